package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The login gate is deliberately trivial: no credentials, no tokens. A
// session is a marker file under the user config dir holding the author
// name the user logged in as.

// SessionPath returns the session marker file location.
func SessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(dir, "storyctl", "session"), nil
}

// SaveSession records a logged-in session for the given author.
func SaveSession(author string) error {
	path, err := SessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(author+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// ActiveSession reports whether a session exists and who it belongs to.
func ActiveSession() (string, bool) {
	path, err := SessionPath()
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// ClearSession removes the session marker. A missing marker is not an error.
func ClearSession() error {
	path, err := SessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
