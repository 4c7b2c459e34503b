// Package app provides the application initialization and wiring.
package app

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDataDir returns the default data directory path.
// Uses ~/.local/share/keyflush for user installations, /var/lib/keyflush as fallback.
func DefaultDataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "keyflush")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share", "keyflush")
	}
	return "/var/lib/keyflush"
}

// ConfigureViper sets up viper with standard config file search paths.
// Config file: keyflush.toml
// Search paths (in order): current directory, ~/.config/keyflush, /etc/keyflush
func ConfigureViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("keyflush")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		v.AddConfigPath(filepath.Join(configHome, "keyflush"))
	}
	v.AddConfigPath("$HOME/.config/keyflush")
	v.AddConfigPath("/etc/keyflush")
}
