package btree

import "errors"

// Sentinel errors for every failure the index can report; success is a nil
// error. Callers match with errors.Is, since call sites wrap these with
// fmt.Errorf("...: %w", ...) for context.
var (
	// ErrNotFound is returned by Lookup and Update when the key is absent.
	ErrNotFound = errors.New("btree: key not found")

	// ErrConflict is returned by Insert when the key is already present.
	ErrConflict = errors.New("btree: key already exists")

	// ErrNoSpace is returned when the backing Cache has no free blocks left
	// to satisfy an allocation.
	ErrNoSpace = errors.New("btree: no free blocks available")

	// ErrUnimplemented marks an operation the index intentionally does not
	// support, such as deletion.
	ErrUnimplemented = errors.New("btree: operation not implemented")

	// ErrInsane is returned by SanityCheck when a structural invariant is
	// violated.
	ErrInsane = errors.New("btree: structural invariant violated")
)
