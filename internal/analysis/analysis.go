// Package analysis runs the full pairs pipeline for one comparison: extract, normalize, spread, signals and
// backtest. Every call starts from scratch; nothing is cached between comparisons.
package analysis

import (
	"errors"
	"fmt"

	"github.com/Bhuwann/pair-trading-app/internal/backtest"
	"github.com/Bhuwann/pair-trading-app/internal/quote"
	"github.com/Bhuwann/pair-trading-app/internal/series"
	"github.com/Bhuwann/pair-trading-app/internal/signal"
	"github.com/Bhuwann/pair-trading-app/internal/stats"
	"github.com/Bhuwann/pair-trading-app/internal/strategy"
)

// Report carries every chart the presentation layer draws. Charts are always present; a chart whose stage did
// not run is empty.
type Report struct {
	Symbol1 string `json:"symbol1"`
	Symbol2 string `json:"symbol2"`

	Price1      series.Chart `json:"price1"`
	Price2      series.Chart `json:"price2"`
	Normalized1 series.Chart `json:"normalized1"`
	Normalized2 series.Chart `json:"normalized2"`
	Spread      series.Chart `json:"spread"`
	// SpreadUpper and SpreadLower are flat lines at ±1 standard deviation of the spread.
	SpreadUpper series.Chart `json:"spread_upper"`
	SpreadLower series.Chart `json:"spread_lower"`
	ZScore      series.Chart `json:"zscore"`
	Buy         series.Chart `json:"buy"`
	Sell        series.Chart `json:"sell"`
	Exit        series.Chart `json:"exit"`
	PnL         series.Chart `json:"pnl"`

	Signals     SignalCounts      `json:"signals"`
	SpreadStats *stats.Statistics `json:"spread_stats,omitempty"`
	Euclidean   float64           `json:"euclidean"`
	Profit      float64           `json:"profit"`
	Position    string            `json:"position"`
	Trades      []backtest.Trade  `json:"trades"`
	Strategy    string            `json:"strategy"`
	Warnings    []string          `json:"warnings"`
}

// SignalCounts is the number of bars carrying each flag.
type SignalCounts struct {
	Buy  int `json:"buy"`
	Sell int `json:"sell"`
	Exit int `json:"exit"`
}

// Analyzer wires a strategy into the pipeline.
type Analyzer struct {
	strategy strategy.Strategy
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithStrategy replaces the default z-score band strategy.
func WithStrategy(s strategy.Strategy) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.strategy = s
		}
	}
}

// New builds an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{strategy: strategy.NewZScoreBands(strategy.DefaultEntryMultiple, strategy.DefaultExitMultiple)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compare analyzes the pair. Extraction, normalization and spread building degrade to empty or zeroed charts.
// Signal and backtest failures are returned as errors, with the report still holding every earlier stage.
func (a *Analyzer) Compare(rec1, rec2 *quote.Record) (*Report, error) {
	r := newReport(a.strategy.Name())
	if rec1 != nil {
		r.Symbol1 = rec1.Symbol
	}
	if rec2 != nil {
		r.Symbol2 = rec2.Symbol
	}

	p1, p2 := series.Extract(rec1), series.Extract(rec2)
	r.Price1, r.Price2 = p1.Chart(), p2.Chart()
	r.Euclidean = series.EuclideanDifference(p1, p2)

	n1 := r.normalize(p1, "first")
	n2 := r.normalize(p2, "second")
	r.Normalized1 = series.NewChart(p1.Labels, n1)
	r.Normalized2 = series.NewChart(p2.Labels, n2)

	spread := series.Difference(n1, n2)
	labels := p1.Labels[:len(spread)]
	s1, s2 := n1[:len(spread)], n2[:len(spread)]
	r.Spread = series.NewChart(labels, spread)
	if len(p1.Labels) != len(p2.Labels) {
		r.warn("histories differ in length (%d vs %d); spread uses the first %d points",
			len(p1.Labels), len(p2.Labels), len(spread))
	}
	if st, err := stats.Compute(spread); err == nil {
		r.SpreadStats = &st
		r.SpreadUpper = series.NewChart(labels, constant(len(spread), st.StdDev))
		r.SpreadLower = series.NewChart(labels, constant(len(spread), -st.StdDev))
	}

	if len(spread) == 0 {
		return r, fmt.Errorf("compare: no overlapping history: %w", series.ErrInvalidInput)
	}

	z, set, err := a.strategy.Evaluate(spread)
	if err != nil {
		return r, fmt.Errorf("compare: %w", err)
	}
	r.ZScore = series.NewChart(labels, z)
	r.Buy = series.NewChart(labels, signal.Float(set.Buy))
	r.Sell = series.NewChart(labels, signal.Float(set.Sell))
	r.Exit = series.NewChart(labels, signal.Float(set.Exit))
	r.Signals.Buy, r.Signals.Sell, r.Signals.Exit = set.Count()

	res, err := backtest.Run(s1, s2, set)
	if err != nil {
		return r, fmt.Errorf("compare: %w", err)
	}
	r.PnL = series.NewChart(labels, res.PnL)
	r.Position = res.Position.String()
	r.Profit = series.Round2(res.FinalCash)
	for _, t := range res.Trades {
		t.Label = labels[t.Index]
		r.Trades = append(r.Trades, t)
	}
	if res.Position != backtest.Flat {
		r.warn("position still %s at the last bar; profit excludes it (marked value %.4f)",
			res.Position, res.MarkedPnL())
	}
	return r, nil
}

func newReport(name string) *Report {
	return &Report{
		Price1:      series.EmptyChart(),
		Price2:      series.EmptyChart(),
		Normalized1: series.EmptyChart(),
		Normalized2: series.EmptyChart(),
		Spread:      series.EmptyChart(),
		SpreadUpper: series.EmptyChart(),
		SpreadLower: series.EmptyChart(),
		ZScore:      series.EmptyChart(),
		Buy:         series.EmptyChart(),
		Sell:        series.EmptyChart(),
		Exit:        series.EmptyChart(),
		PnL:         series.EmptyChart(),
		Position:    backtest.Flat.String(),
		Trades:      []backtest.Trade{},
		Strategy:    name,
		Warnings:    []string{},
	}
}

func (r *Report) normalize(p series.PriceSeries, which string) series.NumericSeries {
	out, err := series.Normalize(p.Values)
	switch {
	case errors.Is(err, series.ErrDegenerateInput):
		r.warn("%s series is constant; normalized to zeros", which)
	case err != nil:
		r.warn("%s series is empty", which)
		return series.NumericSeries{}
	}
	return out
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
