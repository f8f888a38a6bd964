// Package stats computes whole-series summary statistics.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Bhuwann/pair-trading-app/internal/series"
)

// Statistics summarizes a series. Variance is the sample variance (denominator n-1).
type Statistics struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	StdDev   float64 `json:"std"`
}

// Compute returns the statistics of x. Fewer than two points fail with series.ErrInvalidInput.
func Compute(x series.NumericSeries) (Statistics, error) {
	if len(x) < 2 {
		return Statistics{}, fmt.Errorf("statistics over %d points: %w", len(x), series.ErrInvalidInput)
	}
	mean, variance := stat.MeanVariance(x, nil)
	return Statistics{Mean: mean, Variance: variance, StdDev: math.Sqrt(variance)}, nil
}
