package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultSourceDir returns the folder the game client writes its logs to:
// <home>/Documents/My Games/Rocket League/TAGame/Logs.
func DefaultSourceDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "My Games", "Rocket League", "TAGame", "Logs"), nil
}

// Resolve joins path onto base unless path is already absolute.
func Resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
