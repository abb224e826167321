package astgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInlineRule(t *testing.T) {
	valid := `id: find-classes
language: python
rule:
  pattern: class $NAME
`
	require.NoError(t, ValidateInlineRule(valid))
}

func TestValidateInlineRuleMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		wantErr string
	}{
		{
			name:    "missing id",
			rule:    "language: python\nrule:\n  pattern: class $NAME\n",
			wantErr: "id",
		},
		{
			name:    "missing language",
			rule:    "id: x\nrule:\n  pattern: class $NAME\n",
			wantErr: "language",
		},
		{
			name:    "missing rule",
			rule:    "id: x\nlanguage: python\n",
			wantErr: "rule",
		},
		{
			name:    "not yaml at all",
			rule:    "{{{{",
			wantErr: "YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInlineRule(tt.rule)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateInlineRuleComplexRuleBody(t *testing.T) {
	// relational rule bodies are opaque here, only presence is checked
	rule := `id: deep
language: go
rule:
  all:
    - pattern: $X
    - inside:
        kind: function_declaration
        stopBy: end
`
	assert.NoError(t, ValidateInlineRule(rule))
}
