// Package quote hosts daily quote providers and the record types they hand to the analysis engine.
package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformed marks a payload that is not a usable quote document.
	ErrMalformed = errors.New("malformed quote payload")
	// ErrUpstream marks an error message returned by the provider instead of data.
	ErrUpstream = errors.New("provider error")
	// ErrRateLimited marks a provider throttling notice.
	ErrRateLimited = errors.New("provider rate limited")
)

// Bar is the field bag a provider reports for one trading day. Only Close is read by the engine.
type Bar struct {
	Open   string `json:"open,omitempty"`
	High   string `json:"high,omitempty"`
	Low    string `json:"low,omitempty"`
	Close  string `json:"close" validate:"required,price"`
	Volume string `json:"volume,omitempty"`
}

// DatedBar ties a Bar to its date identifier.
type DatedBar struct {
	Date string `json:"date" validate:"required"`
	Bar
}

// Record is a provider response: bars in the order the provider listed them.
type Record struct {
	Symbol string
	Bars   []DatedBar
}

// Len reports the number of bars, treating a nil record as empty.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Bars)
}

// UnmarshalJSON decodes either an Alpha Vantage envelope or a bare date-keyed object, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := Decode(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// Decode parses a daily quote document. Key order in the document becomes bar order in the record.
func Decode(data []byte) (*Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("decode record: %w", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("decode record: %w", ErrMalformed)
	}
	if msg := root.Get(`Error Message`); msg.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, msg.String())
	}
	for _, key := range []string{"Note", "Information"} {
		if msg := root.Get(key); msg.Exists() {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, msg.String())
		}
	}

	rec := &Record{Symbol: root.Get(`Meta Data.2\. Symbol`).String()}
	days, found := root, false
	root.ForEach(func(key, value gjson.Result) bool {
		if strings.HasPrefix(key.String(), "Time Series") && value.IsObject() {
			days, found = value, true
			return false
		}
		return true
	})
	if !found && root.Get("Meta Data").Exists() {
		return nil, fmt.Errorf("decode record: no time series: %w", ErrMalformed)
	}

	days.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch {
		case k == "Meta Data":
		case value.IsObject():
			rec.Bars = append(rec.Bars, DatedBar{Date: k, Bar: decodeBar(value)})
		case rec.Symbol == "" && (strings.EqualFold(k, "ticker") || strings.EqualFold(k, "symbol")):
			rec.Symbol = value.String()
		}
		return true
	})
	return rec, nil
}

func decodeBar(value gjson.Result) Bar {
	var bar Bar
	value.ForEach(func(key, field gjson.Result) bool {
		switch fieldName(key.String()) {
		case "open":
			bar.Open = field.String()
		case "high":
			bar.High = field.String()
		case "low":
			bar.Low = field.String()
		case "close", "close/last":
			bar.Close = field.String()
		case "volume":
			bar.Volume = field.String()
		}
		return true
	})
	return bar
}

// fieldName folds "4. close" and "Close/Last" style keys to a lowercase name.
func fieldName(key string) string {
	key = strings.TrimSpace(key)
	if i := strings.Index(key, ". "); i > 0 && i <= 3 {
		key = key[i+2:]
	}
	return strings.ToLower(strings.TrimSpace(key))
}
