package backtest

// Action names a position transition.
type Action string

const (
	OpenLong   Action = "open_long"
	OpenShort  Action = "open_short"
	CloseLong  Action = "close_long"
	CloseShort Action = "close_short"
)

// Trade is one transition of the simulated book. Cash is the balance after the transition.
type Trade struct {
	Index  int     `json:"index"`
	Label  string  `json:"label,omitempty"`
	Action Action  `json:"action"`
	Spread float64 `json:"spread"`
	Cash   float64 `json:"cash"`
}

// TradeRecorder captures trades for later inspection.
type TradeRecorder interface {
	Record(Trade)
}

// Ledger stores trades in memory for one run.
type Ledger struct {
	trades []Trade
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{trades: make([]Trade, 0, capacity)}
}

// Record appends a trade to the ledger.
func (l *Ledger) Record(trade Trade) {
	l.trades = append(l.trades, trade)
}

// Snapshot returns a copy of the recorded trades.
func (l *Ledger) Snapshot() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Replay feeds trades to rec in order.
func Replay(trades []Trade, rec TradeRecorder) {
	for _, t := range trades {
		rec.Record(t)
	}
}
