// Package main is the entry point for the sgmcp MCP server.
//
// The application follows this startup sequence:
//
// 1. Initialize logging system (stderr only, stdout belongs to MCP)
// 2. Install signal handlers
// 3. Resolve configuration from flags and environment
// 4. Start the MCP server on the selected transport
//
// The main function serves as the orchestrator, delegating specific
// functionality to appropriate internal packages while maintaining
// overall application flow and error handling.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"sgmcp/internal/config"
	"sgmcp/internal/logging"
	"sgmcp/internal/mcp"

	"github.com/spf13/cobra"
)

var (
	flagConfig      string
	flagTransport   string
	flagPort        int
	flagToolTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "sgmcp",
	Short: "MCP server exposing ast-grep structural code search",
	Long: `sgmcp exposes ast-grep to MCP clients as four tools: dump_syntax_tree,
test_match_code_rule, find_code and find_code_by_rule. It requires the
ast-grep binary to be installed and on PATH.

environment variables:
  AST_GREP_CONFIG    Path to sgconfig.yaml file (overridden by --config flag)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.NewAppLogger()

		installSignalHandlers(logger)

		cfg, err := config.Resolve(flagConfig, flagTransport, flagPort, flagToolTimeout)
		if err != nil {
			return err
		}
		logger.Info("Configuration resolved",
			"configPath", cfg.ConfigPath,
			"transport", cfg.Transport,
			"toolTimeout", cfg.ToolTimeout,
		)

		return mcp.NewServer(cfg, logger).Start()
	},
}

// installSignalHandlers ignores SIGINT and shuts down on SIGTERM. Editors
// tend to broadcast SIGINT to the whole process group when the user
// interrupts an unrelated task; exiting would tear down every active MCP
// session, so only SIGTERM is honored.
func installSignalHandlers(logger *logging.AppLogger) {
	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	go func() {
		for range sigint {
			logger.Warn("Received SIGINT - ignoring for multi-session stability")
		}
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM)
	go func() {
		<-sigterm
		logger.Info("Received SIGTERM - shutting down gracefully")
		os.Exit(0)
	}()
}

func main() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "",
		"path to sgconfig.yaml file for customizing ast-grep behavior (language mappings, rule directories, etc.)")
	rootCmd.Flags().StringVar(&flagTransport, "transport", string(config.TransportStdio),
		"transport type for MCP server: stdio or sse")
	rootCmd.Flags().IntVar(&flagPort, "port", 3101,
		"port for SSE transport")
	rootCmd.Flags().DurationVar(&flagToolTimeout, "tool-timeout", 30*time.Second,
		"per-invocation bound on the ast-grep child process (0 disables)")

	if err := rootCmd.Execute(); err != nil {
		logging.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
