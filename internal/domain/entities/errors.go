package entities

import "errors"

// Domain errors
var (
	// ErrVersionConflict is returned when a participant was saved by someone else since it was read
	ErrVersionConflict = errors.New("version conflict")
)
