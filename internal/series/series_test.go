package series

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bhuwann/pair-trading-app/internal/quote"
)

func TestDegenerateIsInvalidInput(t *testing.T) {
	if !errors.Is(ErrDegenerateInput, ErrInvalidInput) {
		t.Fatalf("degenerate input should be a kind of invalid input")
	}
}

func TestExtractNilRecord(t *testing.T) {
	ps := Extract(nil)
	require.NotNil(t, ps.Labels)
	require.NotNil(t, ps.Values)
	assert.Zero(t, ps.Len())
}

func TestExtractKeepsOrderAndSkipsBadBars(t *testing.T) {
	rec := &quote.Record{Bars: []quote.DatedBar{
		{Date: "2024-03-05", Bar: quote.Bar{Close: "$101.50"}},
		{Date: "2024-03-04", Bar: quote.Bar{Close: "100.25"}},
		{Date: "2024-03-01", Bar: quote.Bar{}},
		{Date: "2024-02-29", Bar: quote.Bar{Close: "n/a"}},
		{Date: "2024-03-04", Bar: quote.Bar{Close: "99"}},
		{Date: "", Bar: quote.Bar{Close: "98"}},
		{Date: "2024-02-28", Bar: quote.Bar{Close: " USD 97.75 "}},
		{Date: "2024-02-27", Bar: quote.Bar{Close: "abc12"}},
		{Date: "2024-02-26", Bar: quote.Bar{Close: "N/A 7"}},
		{Date: "2024-02-23", Bar: quote.Bar{Close: "0x1p4"}},
		{Date: "2024-02-22", Bar: quote.Bar{Close: "1_000"}},
		{Date: "2024-02-21", Bar: quote.Bar{Close: "-$5"}},
		{Date: "2024-02-20", Bar: quote.Bar{Close: "$1,024.50"}},
	}}
	ps := Extract(rec)
	assert.Equal(t, []string{"2024-03-05", "2024-03-04", "2024-02-28", "2024-02-20"}, ps.Labels)
	assert.Equal(t, NumericSeries{101.5, 100.25, 97.75, 1024.5}, ps.Values)
}

func TestNormalizeBounds(t *testing.T) {
	out, err := Normalize(NumericSeries{10, 12, 11, 13, 10})
	require.NoError(t, err)
	lo, _ := out.Min()
	hi, _ := out.Max()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
	assert.InDeltaSlice(t, []float64{0, 2.0 / 3, 1.0 / 3, 1, 0}, out, 1e-12)
}

func TestNormalizeIdempotent(t *testing.T) {
	once, err := Normalize(NumericSeries{3.2, -1, 7.5, 0.25, 4})
	require.NoError(t, err)
	twice, err := Normalize(once)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64(once), []float64(twice), 1e-12)
}

func TestNormalizeConstantFallsBackToZeros(t *testing.T) {
	out, err := Normalize(NumericSeries{10, 10, 10, 10, 10})
	require.ErrorIs(t, err, ErrDegenerateInput)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, NumericSeries{0, 0, 0, 0, 0}, out)
	assert.Equal(t, NumericSeries{0, 0, 0, 0, 0}, NormalizeOrZero(NumericSeries{10, 10, 10, 10, 10}))
}

func TestNormalizeEmpty(t *testing.T) {
	out, err := Normalize(nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, errors.Is(err, ErrDegenerateInput))
	assert.Nil(t, out)
	assert.Equal(t, NumericSeries{}, NormalizeOrZero(nil))
}

func TestDifferenceTruncatesToShorter(t *testing.T) {
	a := make(NumericSeries, 500)
	b := make(NumericSeries, 300)
	for i := range a {
		a[i] = float64(i)
	}
	for i := range b {
		b[i] = 1
	}
	d := Difference(a, b)
	require.Len(t, d, 300)
	assert.Equal(t, -1.0, d[0])
	assert.Equal(t, 298.0, d[299])

	assert.Len(t, Difference(b, a), 300)
}

func TestDifferenceSelfIsZero(t *testing.T) {
	a := NumericSeries{0.1, 0.5, 0.9}
	assert.Equal(t, NumericSeries{0, 0, 0}, Difference(a, a))
	assert.NotNil(t, Difference(nil, a))
}

func TestEuclideanDifference(t *testing.T) {
	a := PriceSeries{Labels: []string{"d1", "d2", "d3"}, Values: NumericSeries{1, 2, 3}}
	b := PriceSeries{Labels: []string{"d1", "d2", "d3", "d4"}, Values: NumericSeries{3, 2, 1, 0}}
	// normalized: a = [0, .5, 1], b = [1, 2/3, 1/3, 0]; truncated squares: 1 + 1/36 + 4/9
	assert.Equal(t, 1.47, EuclideanDifference(a, b))
	assert.Equal(t, 0.0, EuclideanDifference(a, a))
	assert.Equal(t, 0.0, EuclideanDifference(PriceSeries{}, a))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, -1.24, Round2(-1.235))
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 2.0, Round2(1.999))
}

func TestNewChartEqualLengths(t *testing.T) {
	c := NewChart([]string{"a", "b", "c"}, []float64{1, 2})
	assert.Equal(t, []string{"a", "b"}, c.Labels)
	assert.Equal(t, []float64{1, 2}, c.Values)

	empty := EmptyChart()
	assert.NotNil(t, empty.Labels)
	assert.NotNil(t, empty.Values)
}
