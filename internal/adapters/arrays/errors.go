package arrays

import "errors"

var (
	// ErrStore wraps filesystem and codec failures of the array store.
	ErrStore = errors.New("array store failure")
	// ErrEraNotFound is returned when an era directory or its manifest is
	// absent.
	ErrEraNotFound = errors.New("era not found in array store")
)
