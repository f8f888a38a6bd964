package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bhuwann/pair-trading-app/internal/analysis"
	"github.com/Bhuwann/pair-trading-app/internal/backtest"
	"github.com/Bhuwann/pair-trading-app/internal/config"
	"github.com/Bhuwann/pair-trading-app/internal/metrics"
	"github.com/Bhuwann/pair-trading-app/internal/quote"
	"github.com/Bhuwann/pair-trading-app/internal/series"
	"github.com/Bhuwann/pair-trading-app/internal/strategy"
)

type compareOptions struct {
	provider string
	format   string
	trades   bool
	entry    float64
	exit     float64
}

func newCompareCmd(root *rootOptions) *cobra.Command {
	opts := &compareOptions{}
	cmd := &cobra.Command{
		Use:   "compare SYMBOL1 SYMBOL2",
		Short: "Fetch two daily histories, build their spread and backtest the strategy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, root, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&opts.provider, "provider", "p", "", "quote provider: stub, alphavantage or csv")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "summary", "output format: summary, json or csv")
	cmd.Flags().BoolVar(&opts.trades, "trades", false, "also print simulated trades as JSON lines")
	cmd.Flags().Float64Var(&opts.entry, "entry", 0, "entry band in σ multiples (overrides config)")
	cmd.Flags().Float64Var(&opts.exit, "exit", 0, "exit band in σ multiples (overrides config)")
	return cmd
}

func runCompare(cmd *cobra.Command, root *rootOptions, opts *compareOptions, symbol1, symbol2 string) error {
	cfg, log, err := root.setup(cmd)
	if err != nil {
		return err
	}
	if cfg.App.MetricsAddr != "" {
		srv := metrics.Serve(cfg.App.MetricsAddr, func(err error) {
			log.Error().Err(err).Str("addr", cfg.App.MetricsAddr).Msg("metrics server failed")
		})
		defer srv.Close()
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}
	applyOverrides(cfg, opts)

	provider, err := quote.Build(cfg.Provider.Name, providerSettings(cfg.Provider), log)
	if err != nil {
		return err
	}
	strat := strategy.Build(cfg.Strategy.Mode, strategy.Params{
		EntryMultiple: cfg.Strategy.Params.EntryMultiple,
		ExitMultiple:  cfg.Strategy.Params.ExitMultiple,
	})

	log.Info().Str("provider", provider.Name()).Str("strategy", strat.Name()).
		Str("symbol1", symbol1).Str("symbol2", symbol2).Msg("comparing pair")
	rec1, rec2, err := quote.FetchPair(cmd.Context(), provider, symbol1, symbol2)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("fetch_error").Inc()
		return err
	}

	report, err := analysis.New(analysis.WithStrategy(strat)).Compare(rec1, rec2)
	if err != nil {
		metrics.ComparisonsTotal.WithLabelValues("invalid").Inc()
		if !errors.Is(err, series.ErrInvalidInput) {
			return err
		}
		log.Warn().Err(err).Msg("analysis incomplete; rendering available stages")
	} else {
		metrics.ComparisonsTotal.WithLabelValues("ok").Inc()
	}
	for _, w := range report.Warnings {
		log.Warn().Msg(w)
	}
	for _, t := range report.Trades {
		metrics.BacktestTradesTotal.WithLabelValues(string(t.Action)).Inc()
	}

	out := cmd.OutOrStdout()
	if err := render(out, report, opts.format); err != nil {
		return err
	}
	if opts.trades {
		rec := backtest.NewJSONLRecorder(out)
		backtest.Replay(report.Trades, rec)
		return rec.Err()
	}
	return nil
}

func applyOverrides(cfg *config.Config, opts *compareOptions) {
	if opts.provider != "" {
		cfg.Provider.Name = opts.provider
	}
	if opts.entry > 0 {
		cfg.Strategy.Params.EntryMultiple = opts.entry
	}
	if opts.exit > 0 {
		cfg.Strategy.Params.ExitMultiple = opts.exit
	}
}

func providerSettings(p config.Provider) quote.Settings {
	return quote.Settings{
		BaseURL:           p.BaseURL,
		APIKey:            p.APIKey,
		OutputSize:        p.OutputSize,
		DataDir:           p.DataDir,
		Timeout:           time.Duration(p.TimeoutMs) * time.Millisecond,
		RequestsPerMinute: p.RequestsPerMinute,
		StubBars:          p.StubBars,
	}
}

func render(w io.Writer, r *analysis.Report, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return r.WriteJSON(w)
	case "csv":
		return r.WriteCSV(w)
	case "", "summary":
		return writeSummary(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeSummary(w io.Writer, r *analysis.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s (%s)\n", r.Symbol1, r.Symbol2, r.Strategy)
	fmt.Fprintf(&b, "Bars: %d / %d, spread points: %d\n", len(r.Price1.Values), len(r.Price2.Values), len(r.Spread.Values))
	fmt.Fprintf(&b, "Euclidean difference: %.2f\n", r.Euclidean)
	if r.SpreadStats != nil {
		fmt.Fprintf(&b, "Spread mean: %.4f  std: %.4f\n", r.SpreadStats.Mean, r.SpreadStats.StdDev)
	}
	fmt.Fprintf(&b, "Signals: buy %d  sell %d  exit %d\n", r.Signals.Buy, r.Signals.Sell, r.Signals.Exit)
	fmt.Fprintf(&b, "Trades: %d  final position: %s\n", len(r.Trades), r.Position)
	fmt.Fprintf(&b, "Profit = %.2f\n", r.Profit)
	_, err := io.WriteString(w, b.String())
	return err
}
