package config

import (
	"os"
	"path/filepath"
)

// AppName names the config and cache directories.
const AppName = "shelfmount"

// EnvConfig overrides the config file location.
const EnvConfig = "SHELFMOUNT_CONFIG"

// CacheDir returns $XDG_CACHE_HOME/shelfmount, or ~/.cache/shelfmount.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// ConfigDir returns $XDG_CONFIG_HOME/shelfmount, or ~/.config/shelfmount.
func ConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// DefaultPath returns $SHELFMOUNT_CONFIG, or config.toml in ConfigDir.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
