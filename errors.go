package browsercookie

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks a cookie store that is absent, not a database,
// or cannot be opened for reading. Find treats it as "no cookies from this
// source" and carries on with the remaining stores.
var ErrStoreUnavailable = errors.New("browsercookie: cookie store unavailable")

// ErrNoMatch is returned by Jar.Get when no cookie has the requested name.
var ErrNoMatch = errors.New("browsercookie: no cookie with that name")

// FormatError reports a store that opened but whose schema or contents do
// not match what this package understands. Unlike ErrStoreUnavailable it
// fails the whole Find call: a corrupted store usually means a real
// misconfiguration, and partial results would be misleading.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("browsercookie: unrecognized store format at %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
