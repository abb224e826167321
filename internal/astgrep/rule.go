package astgrep

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// inlineRule mirrors the fields every ast-grep rule must carry. The rule body
// itself is opaque: ast-grep is the authority on its semantics.
type inlineRule struct {
	ID       string `yaml:"id"`
	Language string `yaml:"language"`
	Rule     any    `yaml:"rule"`
}

// ValidateInlineRule cheaply checks that a rule definition is parseable YAML
// with the required id, language and rule fields, so obviously broken rules
// are rejected before a child process is spawned. Only the first document of
// a multi-rule definition is checked.
func ValidateInlineRule(definition string) error {
	var r inlineRule
	if err := yaml.Unmarshal([]byte(definition), &r); err != nil {
		return fmt.Errorf("rule is not valid YAML: %w", err)
	}
	if r.ID == "" {
		return fmt.Errorf("rule is missing required field 'id'")
	}
	if r.Language == "" {
		return fmt.Errorf("rule is missing required field 'language'")
	}
	if r.Rule == nil {
		return fmt.Errorf("rule is missing required field 'rule'")
	}
	return nil
}
