package mcp

import (
	"context"
	"fmt"
	"strings"

	"sgmcp/internal/astgrep"

	"github.com/mark3labs/mcp-go/mcp"
)

const noMatchesHint = "No matches found for the given code and rule. Try adding `stopBy: end` to your inside/has rule."

const dumpSyntaxTreeDesc = `Dump code's syntax structure or dump a query's pattern structure.
This is useful to discover correct syntax kind and syntax tree structure. Call it when debugging a rule.
The tool requires three arguments: code, language and format. The first two are self-explanatory.
format is the output format of the syntax tree.
use format=cst to inspect the code's concrete syntax tree structure, useful to debug target code.
use format=pattern to inspect how ast-grep interprets a pattern, useful to debug pattern rule.

Internally calls: ast-grep run --pattern <code> --lang <language> --debug-query=<format>`

const testMatchCodeRuleDesc = `Test a code against an ast-grep YAML rule.
This is useful to test a rule before using it in a project.

Internally calls: ast-grep scan --inline-rules <yaml> --json --stdin`

const findCodeDesc = `Find code in a project folder that matches the given ast-grep pattern.
Pattern is good for simple and single-AST node result.
For more complex usage, please use YAML by find_code_by_rule.

Internally calls: ast-grep run --pattern <pattern> [--json] <project_folder>

Output formats:
- text (default): Compact text format with file:line-range headers and complete match text
  Example:
    Found 2 matches:

    path/to/file.py:10-15
    def example_function():
        # function body
        return result

    path/to/file.py:20-22
    def another_function():
        pass

- json: Full match objects with metadata including ranges, meta-variables, etc.

The max_results parameter limits the number of complete matches returned (not individual lines).
When limited, the header shows "Found X matches (showing first Y of Z)".

Example usage:
  find_code(pattern="class $NAME", max_results=20)  # Returns text format
  find_code(pattern="class $NAME", output_format="json")  # Returns JSON with metadata`

const findCodeByRuleDesc = `Find code using ast-grep's YAML rule in a project folder.
YAML rule is more powerful than simple pattern and can perform complex search like find AST inside/having another AST.
It is a more advanced search tool than the simple find_code.

Tip: When using relational rules (inside/has), add stopBy: end to ensure complete traversal.

Internally calls: ast-grep scan --inline-rules <yaml> [--json] <project_folder>

Output formats:
- text (default): Compact text format with file:line-range headers and complete match text
- json: Full match objects with metadata including ranges, meta-variables, etc.

The max_results parameter limits the number of complete matches returned (not individual lines).
When limited, the header shows "Found X matches (showing first Y of Z)".

Example usage:
  find_code_by_rule(yaml="id: x\nlanguage: python\nrule: {pattern: 'class $NAME'}", max_results=20)
  find_code_by_rule(yaml="...", output_format="json")  # For full metadata`

// registerTools wires the four ast-grep tools into the underlying mcp-go
// server.
func (s *Server) registerTools() {
	langs := "Supported: " + strings.Join(s.languages, ", ")

	s.mcpServer.AddTool(mcp.NewTool("dump_syntax_tree",
		mcp.WithDescription(dumpSyntaxTreeDesc),
		mcp.WithString("code", mcp.Required(),
			mcp.Description("The code you need"),
		),
		mcp.WithString("language", mcp.Required(),
			mcp.Description("The language of the code. "+langs),
		),
		mcp.WithString("format",
			mcp.Description("Code dump format. Available values: pattern, ast, cst"),
			mcp.DefaultString("cst"),
			mcp.Enum("pattern", "ast", "cst"),
		),
	), s.handleDumpSyntaxTree)

	s.mcpServer.AddTool(mcp.NewTool("test_match_code_rule",
		mcp.WithDescription(testMatchCodeRuleDesc),
		mcp.WithString("code", mcp.Required(),
			mcp.Description("The code to test against the rule"),
		),
		mcp.WithString("yaml", mcp.Required(),
			mcp.Description("The ast-grep YAML rule to search. It must have id, language, rule fields."),
		),
	), s.handleTestMatchCodeRule)

	s.mcpServer.AddTool(mcp.NewTool("find_code",
		mcp.WithDescription(findCodeDesc),
		mcp.WithString("project_folder", mcp.Required(),
			mcp.Description("The absolute path to the project folder. It must be absolute path."),
		),
		mcp.WithString("pattern", mcp.Required(),
			mcp.Description("The ast-grep pattern to search for. Note, the pattern must have valid AST structure."),
		),
		mcp.WithString("language",
			mcp.Description("The language of the code. "+langs+". If not specified, will be auto-detected based on file extensions."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum results to return"),
		),
		mcp.WithString("output_format",
			mcp.Description("'text' or 'json'"),
			mcp.DefaultString("text"),
		),
	), s.handleFindCode)

	s.mcpServer.AddTool(mcp.NewTool("find_code_by_rule",
		mcp.WithDescription(findCodeByRuleDesc),
		mcp.WithString("project_folder", mcp.Required(),
			mcp.Description("The absolute path to the project folder. It must be absolute path."),
		),
		mcp.WithString("yaml", mcp.Required(),
			mcp.Description("The ast-grep YAML rule to search. It must have id, language, rule fields."),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum results to return"),
		),
		mcp.WithString("output_format",
			mcp.Description("'text' or 'json'"),
			mcp.DefaultString("text"),
		),
	), s.handleFindCodeByRule)
}

// handleDumpSyntaxTree runs a debug-query invocation. ast-grep prints the
// tree dump on stderr by design, so success is judged on stdout and the exit
// code while the payload comes from trimmed stderr.
func (s *Server) handleDumpSyntaxTree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language, err := req.RequireString("language")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := req.GetString("format", "cst")

	result, err := s.runner.Run(ctx, "run", []string{
		"--pattern", code,
		"--lang", language,
		"--debug-query=" + format,
	}, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(strings.TrimSpace(result.Stderr)), nil
}

// handleTestMatchCodeRule pipes the code snippet to ast-grep via stdin and
// matches it against an inline rule. An empty match array is a user-facing
// "no matches" failure with a remediation hint, distinct from a process
// failure.
func (s *Server) handleTestMatchCodeRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rule, err := req.RequireString("yaml")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := astgrep.ValidateInlineRule(rule); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.runner.Run(ctx, "scan", []string{
		"--inline-rules", rule,
		"--json",
		"--stdin",
	}, code)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := astgrep.ParseMatches(result.Stdout)
	if len(matches) == 0 {
		return mcp.NewToolResultError(noMatchesHint), nil
	}

	return mcp.NewToolResultText(astgrep.PrettyJSON(matches)), nil
}

// handleFindCode searches a project folder by pattern.
func (s *Server) handleFindCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputFormat := req.GetString("output_format", "text")
	if outputFormat != "text" && outputFormat != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid output_format: %s. Must be 'text' or 'json'.", outputFormat)), nil
	}
	projectFolder, err := req.RequireString("project_folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language := req.GetString("language", "")
	maxResults := req.GetInt("max_results", 0)

	args := []string{"--pattern", pattern}
	if language != "" {
		// no --lang means ast-grep auto-detects from file extensions
		args = append(args, "--lang", language)
	}
	args = append(args, "--json", projectFolder)

	result, err := s.runner.Run(ctx, "run", args, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return renderMatches(astgrep.ParseMatches(result.Stdout), maxResults, outputFormat), nil
}

// handleFindCodeByRule searches a project folder by inline YAML rule.
func (s *Server) handleFindCodeByRule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputFormat := req.GetString("output_format", "text")
	if outputFormat != "text" && outputFormat != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid output_format: %s. Must be 'text' or 'json'.", outputFormat)), nil
	}
	projectFolder, err := req.RequireString("project_folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rule, err := req.RequireString("yaml")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := astgrep.ValidateInlineRule(rule); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxResults := req.GetInt("max_results", 0)

	result, err := s.runner.Run(ctx, "scan", []string{
		"--inline-rules", rule,
		"--json",
		projectFolder,
	}, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return renderMatches(astgrep.ParseMatches(result.Stdout), maxResults, outputFormat), nil
}

// renderMatches applies the result cap and renders the match array in the
// requested output format. Truncation keeps a stable prefix of the tool's
// original ordering.
func renderMatches(matches []astgrep.Match, maxResults int, outputFormat string) *mcp.CallToolResult {
	total := len(matches)
	truncated := maxResults > 0 && total > maxResults
	if truncated {
		matches = matches[:maxResults]
	}

	if outputFormat == "json" {
		return mcp.NewToolResultText(astgrep.PrettyJSON(matches))
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText("No matches found")
	}

	header := fmt.Sprintf("Found %d matches", len(matches))
	if truncated {
		header = fmt.Sprintf("Found %d matches (showing first %d of %d)", total, maxResults, total)
	}
	return mcp.NewToolResultText(header + ":\n\n" + astgrep.FormatMatchesAsText(matches))
}
