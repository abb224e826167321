package astgrep

import "strings"

// classifySuccess decides whether an ast-grep exit actually represents
// success. ast-grep overloads exit code 1 for both "ran fine, found nothing"
// and genuine usage/runtime errors, so success has to be inferred from the
// shape of stdout combined with the exit code:
//
//   - exit 0 is always success
//   - exit 1 with stdout that is empty, exactly "[]", or starting with "["
//     is a JSON-shaped "no matches" result
//   - exit 1 with empty stdout is also success for non-JSON runs, which
//     legitimately print nothing on no match
//
// Kept as a pure function so the heuristic is testable without spawning
// processes.
func classifySuccess(exitCode int, stdout string, hadJSONFlag bool) bool {
	if exitCode == 0 {
		return true
	}
	if exitCode != 1 {
		return false
	}

	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" || trimmed == "[]" || strings.HasPrefix(trimmed, "[") {
		return true
	}
	if !hadJSONFlag && trimmed == "" {
		return true
	}
	return false
}

// hasJSONFlag reports whether the argument list requests JSON output.
func hasJSONFlag(args []string) bool {
	for _, a := range args {
		if a == "--json" {
			return true
		}
	}
	return false
}
