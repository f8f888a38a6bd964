package series

import "fmt"

// Normalize rescales values to [0, 1] with min-max scaling.
//
// An empty series fails with ErrInvalidInput. A constant series returns a zero series of the same length together
// with an error wrapping ErrDegenerateInput; the zeros are a usable result.
func Normalize(values NumericSeries) (NumericSeries, error) {
	lo, ok := values.Min()
	if !ok {
		return nil, fmt.Errorf("normalize: empty series: %w", ErrInvalidInput)
	}
	hi, _ := values.Max()
	out := make(NumericSeries, len(values))
	if hi == lo {
		return out, fmt.Errorf("normalize: constant series at %g: %w", lo, ErrDegenerateInput)
	}
	span := hi - lo
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out, nil
}

// NormalizeOrZero is Normalize for callers that degrade gracefully: empty input gives an empty series and a
// constant series gives zeros.
func NormalizeOrZero(values NumericSeries) NumericSeries {
	out, _ := Normalize(values)
	if out == nil {
		return NumericSeries{}
	}
	return out
}
