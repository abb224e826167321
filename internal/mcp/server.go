package mcp

import (
	"fmt"

	"sgmcp/internal/astgrep"
	"sgmcp/internal/config"
	"sgmcp/internal/logging"

	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// Server represents an MCP server instance using mcp-go
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	runner    astgrep.Runner
	languages []string
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance with all four ast-grep tools
// registered.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger,
		runner:    astgrep.NewClient(cfg.ConfigPath, cfg.ToolTimeout, logger),
		languages: config.SupportedLanguages(cfg.ConfigPath),
	}

	s.mcpServer = server.NewMCPServer(
		"ast-grep",
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.registerTools()

	return s
}

// Start runs the server on the configured transport and blocks until the
// client disconnects (stdio) or the listener fails (sse).
func (s *Server) Start() error {
	switch s.config.Transport {
	case config.TransportStdio:
		s.logger.Info("Starting MCP server on stdio")
		if err := server.ServeStdio(s.mcpServer); err != nil {
			return fmt.Errorf("MCP server failed: %w", err)
		}
		return nil

	case config.TransportSSE:
		addr := fmt.Sprintf(":%d", s.config.Port)
		s.logger.Info("Starting MCP server on SSE", "addr", addr)
		sse := server.NewSSEServer(s.mcpServer)
		if err := sse.Start(addr); err != nil {
			return fmt.Errorf("SSE server failed: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unsupported transport: %s", s.config.Transport)
	}
}
