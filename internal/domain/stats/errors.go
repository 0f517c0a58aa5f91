package stats

import "errors"

var (
	// ErrLengthMismatch is returned when parallel input slices disagree in length.
	ErrLengthMismatch = errors.New("input slices are not aligned")
	// ErrBadEdges is returned for an unusable bin edge slice.
	ErrBadEdges = errors.New("invalid bin edges")
)
