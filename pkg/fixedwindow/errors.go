package fixedwindow

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired indicates that no store was provided.
	ErrStoreRequired = errors.New("store is required")
)
