package quote

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strconv"
	"time"

	"github.com/Bhuwann/pair-trading-app/internal/metrics"
)

const defaultStubBars = 120

var stubStart = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

// Stub emits deterministic synthetic weekday bars. The same symbol always yields the same history.
type Stub struct {
	bars int
}

// NewStub builds a stub serving n bars per symbol (default 120).
func NewStub(n int) *Stub {
	if n <= 0 {
		n = defaultStubBars
	}
	return &Stub{bars: n}
}

// Name returns the provider identifier.
func (s *Stub) Name() string { return ProviderStub }

// Daily synthesizes a mean-reverting wave around a symbol-specific base price.
func (s *Stub) Daily(ctx context.Context, symbol string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	seed := h.Sum32()
	base := 50 + float64(seed%150)
	phase := float64(seed%360) * math.Pi / 180

	rec := &Record{Symbol: symbol, Bars: make([]DatedBar, 0, s.bars)}
	day := stubStart
	for i := 0; i < s.bars; i++ {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		px := base + 0.05*float64(i) + 4*math.Sin(float64(i)/6+phase)
		rec.Bars = append(rec.Bars, DatedBar{
			Date: day.Format(time.DateOnly),
			Bar:  Bar{Close: strconv.FormatFloat(px, 'f', 4, 64), Volume: "1000"},
		})
		day = day.AddDate(0, 0, 1)
	}
	metrics.QuoteRequestsTotal.WithLabelValues(s.Name(), "ok").Inc()
	return rec, nil
}
