// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the ledger database lives unless
// configured otherwise.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/tally/tally.db")
}

// DefaultTokenPath is where the CLI keeps the bearer token issued at
// registration.
func DefaultTokenPath() string {
	return ExpandPath("~/.config/tally/token")
}
