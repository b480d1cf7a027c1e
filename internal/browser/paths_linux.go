//go:build linux && !android

package browser

import (
	"os"
	"path/filepath"
)

// DefaultUserDataDir returns the Chrome user data directory for this platform.
func DefaultUserDataDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "google-chrome")
}
