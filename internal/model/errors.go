package model

import "errors"

// Sentinel errors shared by the repositories, the booking pipeline and
// the handlers.  Repositories wrap them with entity context; callers
// match with errors.Is.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIntegrityConflict is returned when a write collides with a
	// uniqueness rule or a restrict-on-delete reference.
	ErrIntegrityConflict = errors.New("integrity conflict")
)
