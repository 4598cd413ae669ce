package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Dir is where config.toml and .env live.
func Dir() string {
	return filepath.Join(XDGConfigHome(), "mastermind")
}

// DefaultPath returns the default TOML config path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// DefaultEnvPath returns the default dotenv path for API keys.
func DefaultEnvPath() string {
	return filepath.Join(Dir(), ".env")
}
