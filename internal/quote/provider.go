package quote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// ProviderStub serves deterministic synthetic bars (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderAlphaVantage calls the Alpha Vantage TIME_SERIES_DAILY endpoint.
	ProviderAlphaVantage = "alphavantage"
	// ProviderCSV reads NASDAQ historical CSV exports from a directory.
	ProviderCSV = "csv"
)

// Provider returns the daily closing history for a ticker.
type Provider interface {
	Daily(ctx context.Context, symbol string) (*Record, error)
	Name() string
}

// FetchPair loads both tickers concurrently and returns once both are in.
func FetchPair(ctx context.Context, p Provider, symbol1, symbol2 string) (*Record, *Record, error) {
	var rec1, rec2 *Record
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec1, err = p.Daily(ctx, symbol1)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", symbol1, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rec2, err = p.Daily(ctx, symbol2)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", symbol2, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return rec1, rec2, nil
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Settings carries the knobs Build needs from configuration.
type Settings struct {
	BaseURL           string
	APIKey            string
	OutputSize        string
	DataDir           string
	Timeout           time.Duration
	RequestsPerMinute int
	StubBars          int
}

// Build returns the provider matching name.
func Build(name string, s Settings, log zerolog.Logger) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderStub:
		return NewStub(s.StubBars), nil
	case ProviderCSV:
		if s.DataDir == "" {
			return nil, fmt.Errorf("csv provider needs a data dir")
		}
		return NewCSVProvider(s.DataDir), nil
	case ProviderAlphaVantage, "alpha_vantage", "av":
		if s.APIKey == "" {
			return nil, fmt.Errorf("alphavantage provider needs an api key")
		}
		opts := []Option{
			WithBaseURL(s.BaseURL),
			WithOutputSize(s.OutputSize),
			WithRequestsPerMinute(s.RequestsPerMinute),
		}
		if s.Timeout > 0 {
			opts = append(opts, WithHTTPClient(&http.Client{Timeout: s.Timeout}))
		}
		return NewAlphaVantage(s.APIKey, log, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
