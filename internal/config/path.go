package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns ~/.config/pokerclock (or a cwd fallback).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", "pokerclock")
	}
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, "pokerclock-data")
}
