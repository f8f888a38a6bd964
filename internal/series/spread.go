package series

import (
	"math"

	"github.com/shopspring/decimal"
)

// Difference returns a[i]-b[i] over the common prefix. Trailing points of the longer series are dropped.
func Difference(a, b NumericSeries) NumericSeries {
	n := min(len(a), len(b))
	out := make(NumericSeries, n)
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// EuclideanDifference scores how far apart two price histories move: both are normalized independently and the
// squared differences over the common prefix are summed, rounded to 2 decimals.
func EuclideanDifference(a, b PriceSeries) float64 {
	diff := Difference(NormalizeOrZero(a.Values), NormalizeOrZero(b.Values))
	var sum float64
	for _, d := range diff {
		sum += d * d
	}
	return Round2(sum)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
