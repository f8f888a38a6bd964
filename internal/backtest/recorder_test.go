package backtest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestJSONLRecorder(t *testing.T) {
	var buf bytes.Buffer
	recorder := NewJSONLRecorder(&buf)
	trade := Trade{Index: 2, Label: "2024-01-04", Action: CloseLong, Spread: 0.5, Cash: 0.25}
	recorder.Record(trade)
	recorder.Record(Trade{Index: 5, Action: OpenShort})
	if err := recorder.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	if !scanner.Scan() {
		t.Fatalf("expected first line in recorder output")
	}
	var decoded Trade
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded != trade {
		t.Fatalf("unexpected decoded trade %+v", decoded)
	}
	if !scanner.Scan() {
		t.Fatalf("expected second line in recorder output")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONLRecorderKeepsFirstError(t *testing.T) {
	recorder := NewJSONLRecorder(failingWriter{})
	recorder.Record(Trade{Index: 1})
	recorder.Record(Trade{Index: 2})
	if recorder.Err() == nil {
		t.Fatalf("expected write error")
	}
}
