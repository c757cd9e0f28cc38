package types

import "errors"

// Lifecycle errors.
var (
	ErrNotInitialized = errors.New("database is not initialized")
	ErrCorruptedBlob  = errors.New("stored database blob is corrupted")
)

// Entity errors.
var (
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidRole   = errors.New("invalid user role")
)

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)
