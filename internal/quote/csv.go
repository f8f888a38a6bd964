package quote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Bhuwann/pair-trading-app/internal/metrics"
)

// nasdaqRow mirrors the NASDAQ historical quotes export.
type nasdaqRow struct {
	Date   string `csv:"Date"`
	Close  string `csv:"Close/Last"`
	Volume string `csv:"Volume"`
	Open   string `csv:"Open"`
	High   string `csv:"High"`
	Low    string `csv:"Low"`
}

// CSVProvider reads <dir>/<SYMBOL>.csv files in NASDAQ export format.
type CSVProvider struct {
	dir string
}

// NewCSVProvider serves histories from dir.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// Name returns the provider identifier.
func (p *CSVProvider) Name() string { return ProviderCSV }

// Daily loads the file for symbol, keeping row order.
func (p *CSVProvider) Daily(ctx context.Context, symbol string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	file, err := os.Open(filepath.Join(p.dir, symbol+".csv"))
	if err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues(p.Name(), "error").Inc()
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	var rows []*nasdaqRow
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		metrics.QuoteRequestsTotal.WithLabelValues(p.Name(), "rejected").Inc()
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	rec := &Record{Symbol: symbol, Bars: make([]DatedBar, 0, len(rows))}
	for _, row := range rows {
		rec.Bars = append(rec.Bars, DatedBar{
			Date: row.Date,
			Bar:  Bar{Open: row.Open, High: row.High, Low: row.Low, Close: row.Close, Volume: row.Volume},
		})
	}
	metrics.QuoteRequestsTotal.WithLabelValues(p.Name(), "ok").Inc()
	return rec, nil
}
