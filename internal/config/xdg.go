package config

import (
	"os"
	"path/filepath"
)

const appName = "lockwm"

// ConfigDir is $XDG_CONFIG_HOME/lockwm, defaulting to ~/.config/lockwm.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
