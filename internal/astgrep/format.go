package astgrep

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Match is one structured hit reported by ast-grep's JSON output. It is kept
// as a generic document: only file, range and text are interpreted here,
// everything else (meta-variables and friends) passes through untouched.
type Match map[string]any

// File returns the match's file path, or "" when absent.
func (m Match) File() string {
	s, _ := m["file"].(string)
	return s
}

// Text returns the matched source snippet, or "" when absent.
func (m Match) Text() string {
	s, _ := m["text"].(string)
	return s
}

// StartLine returns the 0-indexed start line, defaulting to 0 for malformed
// records.
func (m Match) StartLine() int { return m.rangeLine("start") }

// EndLine returns the 0-indexed end line, defaulting to 0 for malformed
// records.
func (m Match) EndLine() int { return m.rangeLine("end") }

func (m Match) rangeLine(edge string) int {
	r, _ := m["range"].(map[string]any)
	pos, _ := r[edge].(map[string]any)
	switch v := pos["line"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// ParseMatches decodes ast-grep's JSON match array. Empty stdout and parse
// failures both yield nil: the tool's output format has drifted before, and
// an empty result is always safer than a hard error here.
func ParseMatches(stdout string) []Match {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}
	var matches []Match
	if err := json.Unmarshal([]byte(trimmed), &matches); err != nil {
		return nil
	}
	return matches
}

// FormatMatchesAsText renders matches as compact text blocks:
//
//	path/to/file.py:10-15
//	def example():
//	    ...
//
// Line numbers are 1-indexed; single-line matches use `file:line`. Trailing
// whitespace in the match text is trimmed, leading whitespace is preserved.
// Records are joined by a blank line in input order. Empty input renders as
// the empty string.
func FormatMatchesAsText(matches []Match) string {
	if len(matches) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		// ast-grep reports 0-indexed lines
		startLine := m.StartLine() + 1
		endLine := m.EndLine() + 1

		header := fmt.Sprintf("%s:%d", m.File(), startLine)
		if startLine != endLine {
			header = fmt.Sprintf("%s:%d-%d", m.File(), startLine, endLine)
		}

		text := strings.TrimRightFunc(m.Text(), unicode.IsSpace)
		blocks = append(blocks, header+"\n"+text)
	}

	return strings.Join(blocks, "\n\n")
}

// PrettyJSON renders matches as an indented JSON array, full fidelity. A nil
// or empty slice renders as "[]", never "null".
func PrettyJSON(matches []Match) string {
	if matches == nil {
		matches = []Match{}
	}
	out, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}
