package ingest

import "errors"

var (
	// ErrOpenFile is returned when an input file cannot be opened.
	ErrOpenFile = errors.New("failed to open input file")
	// ErrMissingTree is returned when an expected tree is absent.
	ErrMissingTree = errors.New("tree not found in file")
	// ErrMaskMismatch is returned when the selection mask length differs
	// from the tree entry count.
	ErrMaskMismatch = errors.New("selection mask does not match tree entries")
	// ErrPredictionMismatch is returned when the prediction tree entry count
	// differs from the number of selected events.
	ErrPredictionMismatch = errors.New("prediction entries do not match selected events")
	// ErrMissingPrediction is returned when an era expects prediction files
	// but the matching file is absent.
	ErrMissingPrediction = errors.New("prediction file not found")
	// ErrScanDataset is returned when a dataset directory cannot be listed.
	ErrScanDataset = errors.New("failed to scan dataset directory")
)
