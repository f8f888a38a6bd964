package backtest

import (
	"encoding/json"
	"io"
	"sync"
)

// JSONLRecorder writes trades as JSON lines.
type JSONLRecorder struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewJSONLRecorder wraps w.
func NewJSONLRecorder(w io.Writer) *JSONLRecorder {
	return &JSONLRecorder{enc: json.NewEncoder(w)}
}

// Record writes a single trade. The first write error is kept and later writes are dropped.
func (r *JSONLRecorder) Record(trade Trade) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	r.err = r.enc.Encode(trade)
}

// Err returns the first write error.
func (r *JSONLRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
