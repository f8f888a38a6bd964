package strategy

import (
	"fmt"
	"strings"

	"github.com/Bhuwann/pair-trading-app/internal/series"
	"github.com/Bhuwann/pair-trading-app/internal/signal"
)

// Strategy turns a spread series into z-scores and trading flags.
type Strategy interface {
	Evaluate(spread series.NumericSeries) (series.NumericSeries, signal.Set, error)
	Name() string
}

// Params expresses tunable knobs required by strategy constructors.
type Params struct {
	EntryMultiple float64
	ExitMultiple  float64
}

// ZScoreBands trades the spread's static z-score against fixed σ bands.
type ZScoreBands struct {
	bands Bands
}

// NewZScoreBands builds the strategy; non-positive multiples fall back to the defaults.
func NewZScoreBands(entry, exit float64) *ZScoreBands {
	if entry <= 0 {
		entry = DefaultEntryMultiple
	}
	if exit <= 0 {
		exit = DefaultExitMultiple
	}
	return &ZScoreBands{bands: Bands{Entry: entry, Exit: exit}}
}

// Name returns the identifier for the strategy implementation.
func (s *ZScoreBands) Name() string { return "ZScoreBands" }

// Bands returns the configured bands.
func (s *ZScoreBands) Bands() Bands { return s.bands }

// Evaluate z-scores the spread and derives its flags.
func (s *ZScoreBands) Evaluate(spread series.NumericSeries) (series.NumericSeries, signal.Set, error) {
	if len(spread) < MinPoints {
		return nil, signal.Set{}, fmt.Errorf("evaluate %d points: %w", len(spread), series.ErrInvalidInput)
	}
	z, err := ZScore(spread)
	if err != nil {
		return nil, signal.Set{}, err
	}
	set, err := s.bands.Signals(z)
	if err != nil {
		return nil, signal.Set{}, err
	}
	return z, set, nil
}

// Build returns a strategy implementation matching the configured mode.
func Build(mode string, params Params) Strategy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "zscore", "zscore_bands":
		return NewZScoreBands(params.EntryMultiple, params.ExitMultiple)
	default:
		return NewZScoreBands(params.EntryMultiple, params.ExitMultiple)
	}
}
