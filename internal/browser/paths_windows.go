//go:build windows

package browser

import (
	"os"
	"path/filepath"
)

// DefaultUserDataDir returns the Chrome user data directory for this platform.
func DefaultUserDataDir() string {
	return filepath.Join(os.Getenv("LOCALAPPDATA"), "Google", "Chrome", "User Data")
}
