//go:build !(linux && !android) && !(darwin && !ios) && !windows

package browser

// DefaultUserDataDir returns "" on platforms without a known Chrome layout.
func DefaultUserDataDir() string {
	return ""
}
