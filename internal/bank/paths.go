package bank

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDir is the directory name used under the XDG data home.
const AppDir = "interview-practice"

// DefaultPath resolves the bank file path in priority order:
// 1. IPRACTICE_BANK environment variable
// 2. $XDG_DATA_HOME/interview-practice/questions.json
// 3. ~/.local/share/interview-practice/questions.json
func DefaultPath() (string, error) {
	if p := os.Getenv("IPRACTICE_BANK"); p != "" {
		return p, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "questions.json"), nil
}

// DataDir returns the application's data directory without creating it.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir), nil
}
