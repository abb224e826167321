package config

import (
	"os"
	"sort"

	"sgmcp/internal/logging"

	"gopkg.in/yaml.v3"
)

// builtinLanguages are the languages ast-grep supports out of the box.
var builtinLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "elixir", "go", "haskell", "html",
	"java", "javascript", "json", "jsx", "kotlin", "lua", "nix", "php",
	"python", "ruby", "rust", "scala", "solidity", "swift", "tsx",
	"typescript", "yaml",
}

// sgConfig is the subset of sgconfig.yaml this server cares about.
type sgConfig struct {
	CustomLanguages map[string]any `yaml:"customLanguages"`
}

// SupportedLanguages returns the sorted, de-duplicated language list: the
// built-in set merged with any customLanguages declared in the sgconfig.yaml
// at configPath. An empty path, an unreadable file or unparseable YAML all
// fall back to the built-in set; custom languages are a convenience, never a
// reason to fail startup.
func SupportedLanguages(configPath string) []string {
	languages := append([]string(nil), builtinLanguages...)

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			logging.Warn("Failed to read sgconfig for custom languages", "path", configPath, "error", err)
		} else {
			var cfg sgConfig
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				logging.Warn("Failed to parse sgconfig for custom languages", "path", configPath, "error", err)
			} else {
				for name := range cfg.CustomLanguages {
					languages = append(languages, name)
				}
			}
		}
	}

	sort.Strings(languages)
	unique := languages[:0]
	for i, lang := range languages {
		if i == 0 || lang != languages[i-1] {
			unique = append(unique, lang)
		}
	}
	return unique
}
