// Package strategy contains the spread signal generation logic.
package strategy

import (
	"fmt"
	"math"

	"github.com/Bhuwann/pair-trading-app/internal/series"
	"github.com/Bhuwann/pair-trading-app/internal/signal"
	"github.com/Bhuwann/pair-trading-app/internal/stats"
)

const (
	// DefaultEntryMultiple scales σ for the buy/sell bands.
	DefaultEntryMultiple = 0.75
	// DefaultExitMultiple scales σ for the exit band.
	DefaultExitMultiple = 0.25
	// MinPoints is the shortest series signals are generated for. Two points always z-score to ±1/√2, which
	// no band can separate.
	MinPoints = 3
)

// ZScore standardizes x against its own whole-history mean and standard deviation.
func ZScore(x series.NumericSeries) (series.NumericSeries, error) {
	st, err := stats.Compute(x)
	if err != nil {
		return nil, fmt.Errorf("zscore: %w", err)
	}
	if st.StdDev == 0 || math.IsNaN(st.StdDev) {
		return nil, fmt.Errorf("zscore: zero deviation: %w", series.ErrDegenerateInput)
	}
	out := make(series.NumericSeries, len(x))
	for i, v := range x {
		out[i] = (v - st.Mean) / st.StdDev
	}
	return out, nil
}

// Bands holds the σ multiples for entry and exit.
type Bands struct {
	Entry float64
	Exit  float64
}

// DefaultBands returns the 0.75σ entry and 0.25σ exit bands.
func DefaultBands() Bands {
	return Bands{Entry: DefaultEntryMultiple, Exit: DefaultExitMultiple}
}

// Signals flags z[i] < -Entry·σ as buy, z[i] > Entry·σ as sell and |z[i]| < Exit·σ as exit, where σ is the
// standard deviation of z itself.
func (b Bands) Signals(z series.NumericSeries) (signal.Set, error) {
	if len(z) < MinPoints {
		return signal.Set{}, fmt.Errorf("signals over %d points: %w", len(z), series.ErrInvalidInput)
	}
	st, err := stats.Compute(z)
	if err != nil {
		return signal.Set{}, fmt.Errorf("signals: %w", err)
	}
	sigma := st.StdDev
	set := signal.NewSet(len(z))
	for i, v := range z {
		set.Buy[i] = v < -b.Entry*sigma
		set.Sell[i] = v > b.Entry*sigma
		set.Exit[i] = math.Abs(v) < b.Exit*sigma
	}
	return set, nil
}
