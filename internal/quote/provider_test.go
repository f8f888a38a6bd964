package quote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCSVProviderDaily(t *testing.T) {
	p := NewCSVProvider("testdata")
	rec, err := p.Daily(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	if rec.Symbol != "AAPL" || rec.Len() != 3 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Bars[0].Date != "03/08/2024" || rec.Bars[0].Close != "$170.73" || rec.Bars[2].Low != "$168.68" {
		t.Fatalf("unexpected bars %+v", rec.Bars)
	}
}

func TestCSVProviderMissingFile(t *testing.T) {
	if _, err := NewCSVProvider(t.TempDir()).Daily(context.Background(), "NOPE"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestStubDeterministic(t *testing.T) {
	stub := NewStub(0)
	a, err := stub.Daily(context.Background(), "KO")
	if err != nil {
		t.Fatalf("Daily returned error: %v", err)
	}
	b, _ := stub.Daily(context.Background(), "ko")
	if a.Len() != defaultStubBars || b.Len() != defaultStubBars {
		t.Fatalf("expected %d bars", defaultStubBars)
	}
	for i := range a.Bars {
		if a.Bars[i] != b.Bars[i] {
			t.Fatalf("bar %d differs: %+v vs %+v", i, a.Bars[i], b.Bars[i])
		}
	}
	if a.Bars[0].Date != "2024-01-02" || a.Bars[4].Date != "2024-01-08" {
		t.Fatalf("expected weekday dates, got %s and %s", a.Bars[0].Date, a.Bars[4].Date)
	}
}

type failingProvider struct{ bad string }

func (f failingProvider) Name() string { return "failing" }

func (f failingProvider) Daily(ctx context.Context, symbol string) (*Record, error) {
	if symbol == f.bad {
		return nil, errors.New("boom")
	}
	return &Record{Symbol: symbol}, nil
}

func TestFetchPair(t *testing.T) {
	a, b, err := FetchPair(context.Background(), NewStub(10), "KO", "PEP")
	if err != nil {
		t.Fatalf("FetchPair returned error: %v", err)
	}
	if a.Symbol != "KO" || b.Symbol != "PEP" {
		t.Fatalf("unexpected symbols %s/%s", a.Symbol, b.Symbol)
	}

	_, _, err = FetchPair(context.Background(), failingProvider{bad: "PEP"}, "KO", "PEP")
	if err == nil || !strings.Contains(err.Error(), "fetch PEP") {
		t.Fatalf("expected wrapped PEP error, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	log := zerolog.Nop()
	cases := map[string]string{"": ProviderStub, "stub": ProviderStub, "AlphaVantage": ProviderAlphaVantage, "csv": ProviderCSV}
	for name, want := range cases {
		p, err := Build(name, Settings{APIKey: "demo", DataDir: "testdata"}, log)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", name, err)
		}
		if p.Name() != want {
			t.Fatalf("%q: expected %s, got %s", name, want, p.Name())
		}
	}
	if _, err := Build("alphavantage", Settings{}, log); err == nil {
		t.Fatalf("expected missing api key error")
	}
	if _, err := Build("csv", Settings{}, log); err == nil {
		t.Fatalf("expected missing data dir error")
	}
	if _, err := Build("bloomberg", Settings{}, log); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}
