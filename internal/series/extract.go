package series

import (
	"github.com/Bhuwann/pair-trading-app/internal/quote"
)

// Extract reads the closing prices of rec in provider order. A nil record yields an empty series. Bars that fail
// the schema (missing or unparseable close) and repeated dates are skipped.
func Extract(rec *quote.Record) PriceSeries {
	out := PriceSeries{Labels: []string{}, Values: NumericSeries{}}
	if rec == nil {
		return out
	}
	v := quote.Validator()
	seen := make(map[string]struct{}, len(rec.Bars))
	for _, bar := range rec.Bars {
		if err := v.Struct(bar); err != nil {
			continue
		}
		if _, dup := seen[bar.Date]; dup {
			continue
		}
		px, err := quote.ParsePrice(bar.Close)
		if err != nil {
			continue
		}
		seen[bar.Date] = struct{}{}
		out.Labels = append(out.Labels, bar.Date)
		out.Values = append(out.Values, px)
	}
	return out
}
