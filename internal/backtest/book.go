package backtest

import "github.com/Bhuwann/pair-trading-app/internal/series"

// book tracks the position and cash of one run.
type book struct {
	position Position
	cash     float64
	pnl      series.NumericSeries
	ledger   *Ledger
}

func newBook(capacity int) *book {
	return &book{
		pnl:    make(series.NumericSeries, 0, capacity),
		ledger: NewLedger(0),
	}
}

func (b *book) step(i int, spread float64, buy, sell, exit bool) {
	switch {
	case b.position == Flat && buy:
		b.cash -= spread
		b.position = Long
		b.record(i, OpenLong, spread)
	case b.position == Flat && sell:
		b.cash += spread
		b.position = Short
		b.record(i, OpenShort, spread)
	case b.position == Long && exit:
		b.cash += spread
		b.position = Flat
		b.record(i, CloseLong, spread)
	case b.position == Short && exit:
		b.cash -= spread
		b.position = Flat
		b.record(i, CloseShort, spread)
	}
	b.pnl = append(b.pnl, b.cash)
}

func (b *book) record(i int, action Action, spread float64) {
	b.ledger.Record(Trade{Index: i, Action: action, Spread: spread, Cash: b.cash})
}
