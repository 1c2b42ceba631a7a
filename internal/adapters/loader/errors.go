package loader

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrDataLoad covers a missing, unreadable, or structurally invalid
	// source (e.g. required columns absent). Fatal to the run.
	ErrDataLoad = errors.New("data load failed")

	// ErrEmptyDataset means no valid rows remained after filtering.
	ErrEmptyDataset = errors.New("no valid incident records in dataset")
)
