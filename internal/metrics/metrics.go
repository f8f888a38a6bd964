package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quote_requests_total", Help: "Daily quote requests by provider and outcome"},
		[]string{"provider", "status"},
	)
	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "comparisons_total", Help: "Pair comparisons run"},
		[]string{"status"},
	)
	BacktestTradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_trades_total", Help: "Simulated spread trades"},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(QuoteRequestsTotal, ComparisonsTotal, BacktestTradesTotal)
}

// Serve exposes /metrics on addr in the background. onErr, when set, receives listen failures; a clean Close is
// not reported.
func Serve(addr string, onErr func(error)) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onErr != nil {
			onErr(err)
		}
	}()
	return srv
}
