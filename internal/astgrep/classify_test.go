package astgrep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySuccess(t *testing.T) {
	tests := []struct {
		name        string
		exitCode    int
		stdout      string
		hadJSONFlag bool
		want        bool
	}{
		{"exit 0 is always success", 0, "", false, true},
		{"exit 0 with garbage stdout is success", 0, "not json", true, true},
		{"exit 1 with empty JSON array", 1, "[]", true, true},
		{"exit 1 with padded empty array", 1, "  []  \n", true, true},
		{"exit 1 with match array", 1, `[{"file":"a.py"}]`, true, true},
		{"exit 1 with array start only", 1, "[", true, true},
		{"exit 1 with empty stdout and json flag", 1, "", true, true},
		{"exit 1 with whitespace stdout and json flag", 1, "   \n\t", true, true},
		{"exit 1 with empty stdout and no json flag", 1, "", false, true},
		{"exit 1 with non-json stdout and json flag", 1, "not json", true, false},
		{"exit 1 with non-json stdout and no json flag", 1, "not json", false, false},
		{"exit 1 with object stdout", 1, `{"error":"x"}`, true, false},
		{"exit 2 is failure", 2, "", false, false},
		{"exit 2 with empty array is failure", 2, "[]", true, false},
		{"exit 127 is failure", 127, "", true, false},
		{"exit 3 with array stdout is failure", 3, "[", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySuccess(tt.exitCode, tt.stdout, tt.hadJSONFlag)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifySuccessNonOneNonZeroNeverSucceeds(t *testing.T) {
	// Only exit codes 0 and 1 can classify as success, regardless of stdout
	// shape.
	for _, code := range []int{2, 3, 101, 127, 255} {
		assert.False(t, classifySuccess(code, "[]", true), "exit %d must fail", code)
		assert.False(t, classifySuccess(code, "", false), "exit %d must fail", code)
	}
}

func TestHasJSONFlag(t *testing.T) {
	assert.True(t, hasJSONFlag([]string{"ast-grep", "run", "--json", "/p"}))
	assert.False(t, hasJSONFlag([]string{"ast-grep", "run", "/p"}))
	// exact match only, not prefix
	assert.False(t, hasJSONFlag([]string{"ast-grep", "run", "--json=compact"}))
	assert.False(t, hasJSONFlag(nil))
}
