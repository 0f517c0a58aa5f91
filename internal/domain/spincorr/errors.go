package spincorr

import "errors"

var (
	// ErrLengthMismatch is returned when the top and lepton slices disagree
	// in length.
	ErrLengthMismatch = errors.New("tops and leptons are not aligned")
)
