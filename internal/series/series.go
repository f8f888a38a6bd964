// Package series turns provider records into price series and derives the normalized and spread series
// the pairs strategy runs on.
package series

import "gonum.org/v1/gonum/floats"

// NumericSeries is an ordered run of values, positionally aligned to the labels of the series it came from.
type NumericSeries []float64

// PriceSeries is a chronological run of (label, closing price) pairs. Labels are unique.
type PriceSeries struct {
	Labels []string
	Values NumericSeries
}

// Len returns the number of points.
func (p PriceSeries) Len() int { return len(p.Values) }

// Chart is the {labels, values} pair handed to the presentation layer. Both slices are always non-nil and of
// equal length.
type Chart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// EmptyChart returns a valid chart with no points.
func EmptyChart() Chart {
	return Chart{Labels: []string{}, Values: []float64{}}
}

// NewChart pairs values with labels, truncating both to the shorter length.
func NewChart(labels []string, values []float64) Chart {
	n := min(len(labels), len(values))
	c := Chart{Labels: make([]string, n), Values: make([]float64, n)}
	copy(c.Labels, labels[:n])
	copy(c.Values, values[:n])
	return c
}

// Chart converts the price series for presentation.
func (p PriceSeries) Chart() Chart { return NewChart(p.Labels, p.Values) }

// Min returns the smallest value and false when the series is empty.
func (s NumericSeries) Min() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return floats.Min(s), true
}

// Max returns the largest value and false when the series is empty.
func (s NumericSeries) Max() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return floats.Max(s), true
}
