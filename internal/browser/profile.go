package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// preferredProfiles are probed, in order, before any other profile directory.
var preferredProfiles = []string{"Default", "Profile 1", "Profile 2"}

// FindProfile locates the profile to analyse under userDataDir. The
// preferred profile names are tried first; otherwise the first directory
// (in name order) holding a History store wins.
func FindProfile(userDataDir string) (Profile, error) {
	if userDataDir == "" {
		return Profile{}, fmt.Errorf("%w: no user data directory for this platform", ErrProfileNotFound)
	}

	for _, name := range preferredProfiles {
		dir := filepath.Join(userDataDir, name)
		if fileExists(filepath.Join(dir, "History")) {
			return profileAt(userDataDir, dir), nil
		}
	}

	entries, err := os.ReadDir(userDataDir)
	if err != nil {
		return Profile{}, fmt.Errorf("%w at %s", ErrProfileNotFound, userDataDir)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(userDataDir, e.Name())
		if fileExists(filepath.Join(dir, "History")) {
			return profileAt(userDataDir, dir), nil
		}
	}

	return Profile{}, fmt.Errorf("%w at %s", ErrProfileNotFound, userDataDir)
}

// ProfileFromDir resolves an explicit profile directory.
func ProfileFromDir(dir string) (Profile, error) {
	dir = strings.TrimSpace(dir)
	if !fileExists(filepath.Join(dir, "History")) {
		return Profile{}, fmt.Errorf("%w: no History store in %s", ErrProfileNotFound, dir)
	}
	return profileAt(filepath.Dir(dir), dir), nil
}

func profileAt(userDataDir, dir string) Profile {
	p := Profile{
		UserDataDir: userDataDir,
		Dir:         dir,
		Name:        filepath.Base(dir),
		HistoryPath: filepath.Join(dir, "History"),
	}
	// Newer Chromium builds keep cookies under Network/.
	for _, candidate := range []string{
		filepath.Join(dir, "Network", "Cookies"),
		filepath.Join(dir, "Cookies"),
	} {
		if fileExists(candidate) {
			p.CookiesPath = candidate
			break
		}
	}
	return p
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
