package aggregate

import (
	"math"
	"sort"

	"github.com/riskcraft/riskreg/internal/domain/model"
)

// resolutionStats computes the five resolution-time statistics over a
// non-empty slice of durations in hours.
func resolutionStats(hours []float64) model.ResolutionStats {
	sorted := make([]float64, len(hours))
	copy(sorted, hours)
	sort.Float64s(sorted)

	var sum float64
	for _, h := range sorted {
		sum += h
	}
	mean := sum / float64(len(sorted))

	var sq float64
	for _, h := range sorted {
		d := h - mean
		sq += d * d
	}

	return model.ResolutionStats{
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		// Population standard deviation; zero when a single record.
		StdDev: math.Sqrt(sq / float64(len(sorted))),
	}
}

// median expects its input sorted ascending.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
