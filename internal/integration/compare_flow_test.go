package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bhuwann/pair-trading-app/internal/analysis"
	"github.com/Bhuwann/pair-trading-app/internal/backtest"
	"github.com/Bhuwann/pair-trading-app/internal/quote"
	"github.com/Bhuwann/pair-trading-app/internal/strategy"
)

func TestStubFlowProducesTrades(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := quote.Build(quote.ProviderStub, quote.Settings{StubBars: 250}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	rec1, rec2, err := quote.FetchPair(ctx, provider, "XOM", "CVX")
	if err != nil {
		t.Fatalf("FetchPair returned error: %v", err)
	}

	strat := strategy.Build("zscore_bands", strategy.Params{})
	report, err := analysis.New(analysis.WithStrategy(strat)).Compare(rec1, rec2)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(report.PnL.Values) != 250 {
		t.Fatalf("expected 250 pnl points, got %d", len(report.PnL.Values))
	}
	if len(report.Trades) == 0 {
		t.Fatalf("expected the synthetic spread to trigger trades")
	}

	var buf bytes.Buffer
	rec := backtest.NewJSONLRecorder(&buf)
	backtest.Replay(report.Trades, rec)
	if err := rec.Err(); err != nil {
		t.Fatalf("recorder error: %v", err)
	}
	if got := bytes.Count(buf.Bytes(), []byte("\n")); got != len(report.Trades) {
		t.Fatalf("expected %d trade lines, got %d", len(report.Trades), got)
	}
}

func TestAlphaVantageFlow(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("..", "quote", "testdata", "MSFT.json"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture)
	}))
	defer server.Close()

	var logs bytes.Buffer
	provider := quote.NewAlphaVantage("demo", zerolog.New(&logs).Level(zerolog.DebugLevel),
		quote.WithBaseURL(server.URL), quote.WithRequestsPerMinute(-1))
	csv := quote.NewCSVProvider(filepath.Join("..", "quote", "testdata"))

	msft, err := provider.Daily(context.Background(), "MSFT")
	if err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	aapl, err := csv.Daily(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("csv Daily returned error: %v", err)
	}

	report, err := analysis.New().Compare(msft, aapl)
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if len(report.Spread.Values) != 3 {
		t.Fatalf("expected spread truncated to 3 points, got %d", len(report.Spread.Values))
	}
	if report.Price2.Values[0] != 170.73 {
		t.Fatalf("expected currency prefix stripped, got %v", report.Price2.Values[0])
	}
	if !bytes.Contains(logs.Bytes(), []byte("daily series fetched")) {
		t.Fatalf("expected fetch log line, got %s", logs.String())
	}
}
