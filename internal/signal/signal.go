// Package signal standardizes payloads shared between the strategy and backtest layers.
package signal

// Set holds entry/exit flags aligned to the spread that produced them. Flags are derived independently per
// index, so more than one may be true at the same index; the backtest decides precedence.
type Set struct {
	Buy  []bool `json:"buy"`
	Sell []bool `json:"sell"`
	Exit []bool `json:"exit"`
}

// NewSet allocates a Set of n points with every flag false.
func NewSet(n int) Set {
	return Set{Buy: make([]bool, n), Sell: make([]bool, n), Exit: make([]bool, n)}
}

// Len returns the common length, or -1 when the three flag series disagree.
func (s Set) Len() int {
	n := len(s.Buy)
	if len(s.Sell) != n || len(s.Exit) != n {
		return -1
	}
	return n
}

// Count reports how many indices carry each flag.
func (s Set) Count() (buy, sell, exit int) {
	for _, b := range s.Buy {
		if b {
			buy++
		}
	}
	for _, b := range s.Sell {
		if b {
			sell++
		}
	}
	for _, b := range s.Exit {
		if b {
			exit++
		}
	}
	return buy, sell, exit
}

// Float maps flags to 1/0 for charting.
func Float(flags []bool) []float64 {
	out := make([]float64, len(flags))
	for i, f := range flags {
		if f {
			out[i] = 1
		}
	}
	return out
}
