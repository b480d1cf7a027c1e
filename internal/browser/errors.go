package browser

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable reports a store that is missing or does not have
	// the expected table layout.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrProfileNotFound reports that no profile with a History store exists
	// under the user data directory.
	ErrProfileNotFound = errors.New("browser profile not found")
)

// StoreError describes why a store could not be read. It matches
// ErrStoreUnavailable with errors.Is.
type StoreError struct {
	Path  string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("store unavailable: %s (table %s): %v", e.Path, e.Table, e.Err)
	}
	return fmt.Sprintf("store unavailable: %s: %v", e.Path, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}
