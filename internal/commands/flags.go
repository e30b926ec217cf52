package commands

import (
	"os"
	"path/filepath"

	"github.com/sadopc/taskpulse/internal/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DBPath     string
	UserID     string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "taskpulse", "config.yaml")
}

// DefaultLogFile returns the default log file path using XDG_STATE_HOME.
// On Linux this is ~/.local/state/taskpulse/taskpulse.log.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "taskpulse", "taskpulse.log")
}
