package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Bhuwann/pair-trading-app/internal/metrics"
)

const (
	defaultAlphaVantageBaseURL = "https://www.alphavantage.co"
	defaultOutputSize          = "compact"
	defaultRequestsPerMinute   = 5
	defaultTimeout             = 10 * time.Second
	maxBodyBytes               = 16 << 20
)

// AlphaVantage fetches TIME_SERIES_DAILY documents over HTTP.
type AlphaVantage struct {
	baseURL    string
	apiKey     string
	outputSize string
	client     *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        zerolog.Logger
}

// Option configures AlphaVantage construction parameters.
type Option func(*AlphaVantage)

// WithBaseURL points the client at another host, e.g. an httptest server.
func WithBaseURL(base string) Option {
	return func(a *AlphaVantage) {
		if base != "" {
			a.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithOutputSize selects "compact" (100 bars) or "full" history.
func WithOutputSize(size string) Option {
	return func(a *AlphaVantage) {
		switch strings.ToLower(size) {
		case "compact", "full":
			a.outputSize = strings.ToLower(size)
		}
	}
}

// WithHTTPClient swaps the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *AlphaVantage) {
		if c != nil {
			a.client = c
		}
	}
}

// WithRequestsPerMinute sets the client-side request budget. Negative disables limiting, zero keeps the default.
func WithRequestsPerMinute(n int) Option {
	return func(a *AlphaVantage) {
		switch {
		case n < 0:
			a.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		case n == 0:
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// NewAlphaVantage builds a client for the given API key.
func NewAlphaVantage(apiKey string, log zerolog.Logger, opts ...Option) *AlphaVantage {
	a := &AlphaVantage{
		baseURL:    defaultAlphaVantageBaseURL,
		apiKey:     apiKey,
		outputSize: defaultOutputSize,
		client:     &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/defaultRequestsPerMinute), 1),
		log:        log,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    ProviderAlphaVantage,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			a.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
	return a
}

// Name returns the provider identifier.
func (a *AlphaVantage) Name() string { return ProviderAlphaVantage }

// Daily returns the daily bars for symbol in the order Alpha Vantage lists them.
func (a *AlphaVantage) Daily(ctx context.Context, symbol string) (*Record, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := a.breaker.Execute(func() (interface{}, error) {
		return a.fetch(ctx, symbol)
	})
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues(a.Name(), "error").Inc()
		return nil, err
	}

	rec, err := Decode(body.([]byte))
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues(a.Name(), "rejected").Inc()
		return nil, err
	}
	if rec.Symbol == "" {
		rec.Symbol = symbol
	}
	metrics.QuoteRequestsTotal.WithLabelValues(a.Name(), "ok").Inc()
	a.log.Debug().Str("symbol", symbol).Int("bars", rec.Len()).Msg("daily series fetched")
	return rec, nil
}

func (a *AlphaVantage) fetch(ctx context.Context, symbol string) ([]byte, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", a.outputSize)
	q.Set("apikey", a.apiKey)
	endpoint := fmt.Sprintf("%s/query?%s", a.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "pair-trading-app/1.0")
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
