package classify

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoAggregates     = errors.New("no aggregates to classify")
	ErrInsufficientData = errors.New("insufficient data for percentile classification")
)
