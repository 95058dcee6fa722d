package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/pencil/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded on first use by LoadConfig
	Config *config.Config
}

// LoadConfig loads the config at ConfigPath once and caches it.
func (f *Flags) LoadConfig() (*config.Config, error) {
	if f.Config != nil {
		return f.Config, nil
	}

	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	f.Config = cfg
	return cfg, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pencil", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/pencil/pencil.log
// On Linux: $XDG_STATE_HOME/pencil/pencil.log (defaults to ~/.local/state/pencil/pencil.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "pencil", "pencil.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "pencil", "pencil.log")
	}

	return filepath.Join(home, ".local", "state", "pencil", "pencil.log")
}
