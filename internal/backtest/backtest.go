// Package backtest simulates a single long/short position on the spread of two normalized price series.
package backtest

import (
	"fmt"

	"github.com/Bhuwann/pair-trading-app/internal/series"
	"github.com/Bhuwann/pair-trading-app/internal/signal"
)

// Position is the spread exposure: short, flat or long.
type Position int

const (
	Short Position = -1
	Flat  Position = 0
	Long  Position = 1
)

func (p Position) String() string {
	switch p {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "flat"
	}
}

// Result is the outcome of one simulation run.
type Result struct {
	// PnL holds cash after each step, one point per input index. Open positions are not marked.
	PnL       series.NumericSeries `json:"pnl"`
	Trades    []Trade              `json:"trades"`
	Position  Position             `json:"position"`
	FinalCash float64              `json:"final_cash"`
	// LastSpread is S1-S2 at the final index, kept for MarkedPnL.
	LastSpread float64 `json:"last_spread"`
}

// MarkedPnL values an open position at the last spread on top of realized cash. The PnL series itself never
// includes this.
func (r *Result) MarkedPnL() float64 {
	return r.FinalCash + float64(r.Position)*r.LastSpread
}

// Run walks the flags in index order with a flat book and zero cash. At each step, checked in order:
// flat+buy opens long (cash -= spread), flat+sell opens short (cash += spread), long+exit closes
// (cash += spread), short+exit closes (cash -= spread). Cash is appended after every step and an open
// position is left open at the end.
func Run(s1, s2 series.NumericSeries, set signal.Set) (*Result, error) {
	n := len(s1)
	if len(s2) != n || len(set.Buy) != n || len(set.Sell) != n || len(set.Exit) != n {
		return nil, fmt.Errorf("backtest: lengths s1=%d s2=%d buy=%d sell=%d exit=%d: %w",
			n, len(s2), len(set.Buy), len(set.Sell), len(set.Exit), series.ErrInvalidInput)
	}

	book := newBook(n)
	for i := 0; i < n; i++ {
		book.step(i, s1[i]-s2[i], set.Buy[i], set.Sell[i], set.Exit[i])
	}

	res := &Result{
		PnL:       book.pnl,
		Trades:    book.ledger.Snapshot(),
		Position:  book.position,
		FinalCash: book.cash,
	}
	if n > 0 {
		res.LastSpread = s1[n-1] - s2[n-1]
	}
	return res, nil
}
