package memory

import "errors"

// Domain errors for memory backends.
var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidKey indicates an empty or malformed key.
	ErrInvalidKey = errors.New("invalid key")

	// ErrConnectionFailed indicates the backing store is unreachable.
	ErrConnectionFailed = errors.New("memory backend connection failed")
)
