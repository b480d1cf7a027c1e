//go:build darwin && !ios

package browser

import (
	"os"
	"path/filepath"
)

// DefaultUserDataDir returns the Chrome user data directory for this platform.
func DefaultUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Application Support", "Google", "Chrome")
}
