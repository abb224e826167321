package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sgmcp/internal/logging"

	"github.com/adrg/xdg"
)

const APP_NAME = "sgmcp" // application name used for config directory

// EnvConfigPath names the environment variable holding the sgconfig.yaml
// path; the --config flag overrides it.
const EnvConfigPath = "AST_GREP_CONFIG"

// TransportType selects how the MCP server talks to its client.
type TransportType string

const (
	TransportStdio TransportType = "stdio"
	TransportSSE   TransportType = "sse"
)

// Config holds the resolved process-wide settings. It is built once at
// startup and read-only afterwards.
type Config struct {
	// ConfigPath is the resolved sgconfig.yaml path, or "" when none was
	// found. Passed to every ast-grep invocation as --config.
	ConfigPath string

	Transport TransportType
	Port      int

	// ToolTimeout bounds each ast-grep child process; zero disables the
	// bound.
	ToolTimeout time.Duration
}

// DefaultConfigPath returns the standard sgconfig.yaml location for the
// current platform, used as a last-resort lookup after the flag and the
// environment variable.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, APP_NAME, "sgconfig.yaml")
}

// Resolve builds the Config from CLI flag values. Precedence for the
// sgconfig path: --config flag, then AST_GREP_CONFIG, then the XDG config
// dir. An explicitly named file that does not exist is an error; the XDG
// fallback is silently skipped when absent.
func Resolve(flagConfigPath string, transport string, port int, toolTimeout time.Duration) (*Config, error) {
	switch TransportType(transport) {
	case TransportStdio, TransportSSE:
	default:
		return nil, fmt.Errorf("invalid transport %q: must be 'stdio' or 'sse'", transport)
	}

	configPath := flagConfigPath
	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file '%s' does not exist", configPath)
		}
		logging.Debug("Using ast-grep config", "path", configPath)
	} else {
		fallback := DefaultConfigPath()
		if _, err := os.Stat(fallback); err == nil {
			configPath = fallback
			logging.Debug("Using ast-grep config from XDG config dir", "path", configPath)
		}
	}

	return &Config{
		ConfigPath:  configPath,
		Transport:   TransportType(transport),
		Port:        port,
		ToolTimeout: toolTimeout,
	}, nil
}
