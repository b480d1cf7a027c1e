package browser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Snapshot is a private copy of a store taken so that a running browser's
// lock on the live file does not interfere with reading it.
type Snapshot struct {
	Path    string
	cleanup func()
}

// Close removes the snapshot's scratch directory, if it owns one.
func (s *Snapshot) Close() error {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
	return nil
}

// TakeSnapshot copies src (plus its -wal and -shm sidecars, which may hold
// recent writes) into dir as "copy_<name>". An empty dir means a fresh
// temporary directory that Close removes; a non-empty dir is kept. Failing
// to copy a sidecar that exists fails the snapshot.
func TakeSnapshot(src, dir string) (*Snapshot, error) {
	if !fileExists(src) {
		return nil, &StoreError{Path: src, Err: os.ErrNotExist}
	}

	var cleanup func()
	if dir == "" {
		tmp, err := os.MkdirTemp("", "histaudit-")
		if err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
		dir = tmp
		cleanup = func() { _ = os.RemoveAll(tmp) }
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	target := filepath.Join(dir, "copy_"+filepath.Base(src))
	fail := func(path string, err error) (*Snapshot, error) {
		if cleanup != nil {
			cleanup()
		}
		return nil, fmt.Errorf("copy %s: %w", path, err)
	}
	if err := copyFile(src, target); err != nil {
		return fail(src, err)
	}
	// A sidecar that exists but cannot be copied would leave the snapshot
	// without the browser's most recent writes.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := copyFileIfExists(src+suffix, target+suffix); err != nil {
			return fail(src+suffix, err)
		}
	}

	return &Snapshot{Path: target, cleanup: cleanup}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func copyFileIfExists(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return copyFile(src, dst)
}
