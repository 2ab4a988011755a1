package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrMalformedID marks an identifier that is not a 24 character hex token.
	// It is raised before any storage lookup.
	ErrMalformedID = errors.New("malformed_id")
	// ErrConflict is returned by stores on unique key violations (username, slug).
	ErrConflict = errors.New("conflict")
)
