package ledger

import "errors"

var (
	// ErrValidation marks a missing or invalid required field. The operation
	// aborts with no state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an operation referencing an entity id that is not
	// present in the store.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks an operation on an entity not owned by the
	// current user.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRemote marks a persistence gateway failure. The local mirror is
	// left unchanged.
	ErrRemote = errors.New("persistence failure")
)
