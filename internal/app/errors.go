package service

import "errors"

var (
	// ErrNoInputFiles is returned when the scan selects nothing.
	ErrNoInputFiles = errors.New("no input files selected")
	// ErrNoEvents is returned when ingestion produced no events at all.
	ErrNoEvents = errors.New("no events extracted")
	// ErrEnqueue is returned when a job cannot be queued.
	ErrEnqueue = errors.New("failed to enqueue file job")
	// ErrNoArrays is returned when evaluation finds no persisted eras.
	ErrNoArrays = errors.New("no arrays found to evaluate")
)
