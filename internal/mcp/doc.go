// Package mcp provides the Model Context Protocol (MCP) server exposing
// ast-grep to AI assistants using mcp-go.
//
// This package implements an MCP server that lets AI assistants run
// structural code search through a standardized protocol. Four tools are
// exposed:
//
//   - dump_syntax_tree: dump a code snippet's syntax structure, useful when
//     debugging a pattern or rule
//   - test_match_code_rule: test an inline YAML rule against a code snippet
//   - find_code: search a project folder by ast-grep pattern
//   - find_code_by_rule: search a project folder by inline YAML rule
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go). Each
// tool handler validates its parameters, builds the ast-grep argument list
// and delegates the invocation to the astgrep package, which owns process
// spawning and ast-grep's exit-code disambiguation.
//
// Handlers hold no shared mutable state: every call owns its own child
// process, buffers and parsed result, so concurrent tool calls are
// independent by construction.
//
// # Usage
//
// The MCP server is typically started as a subprocess by AI assistants that
// support MCP integration. It can also be started manually for testing:
//
//	sgmcp
//
// The server reads JSON-RPC requests from stdin and writes responses to
// stdout until it receives EOF or is terminated. With --transport sse it
// serves the protocol over HTTP/SSE instead.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
// - ast-grep: https://ast-grep.github.io
package mcp
