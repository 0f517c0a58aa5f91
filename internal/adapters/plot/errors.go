package plot

import "errors"

var (
	// ErrUnknownEra is returned for eras outside Run 2 and Run 3.
	ErrUnknownEra = errors.New("era is not a Run 2 or Run 3 era")
	// ErrRender wraps figure construction and save failures.
	ErrRender = errors.New("failed to render plot")
	// ErrNoData is returned when a figure has nothing to draw.
	ErrNoData = errors.New("no data to plot")
)
