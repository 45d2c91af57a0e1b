// Package metrics exposes Prometheus instrumentation for the indicator
// pipeline: batch throughput, per-ticker compute latency and formula
// evaluation outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the chart calculation engine.
type Metrics struct {
	TickersTotal        *prometheus.CounterVec // labels: status=ok|empty|failed
	IndicatorsTotal     prometheus.Counter
	IndicatorComputeDur prometheus.Histogram
	FormulaEvals        *prometheus.CounterVec // labels: result=ok|no_result
	BatchDur            prometheus.Histogram
}

// NewMetrics registers and returns all Prometheus metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		TickersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartcalc_tickers_total",
			Help: "Tickers processed per batch outcome",
		}, []string{"status"}),
		IndicatorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chartcalc_indicators_total",
			Help: "Total indicator overlays computed",
		}),
		IndicatorComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartcalc_indicator_compute_duration_seconds",
			Help:    "Indicator engine compute latency per ticker",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		FormulaEvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartcalc_formula_evals_total",
			Help: "User formula evaluations per outcome",
		}, []string{"result"}),
		BatchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chartcalc_batch_duration_seconds",
			Help:    "Wall time per multi-ticker batch run",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(
		m.TickersTotal,
		m.IndicatorsTotal,
		m.IndicatorComputeDur,
		m.FormulaEvals,
		m.BatchDur,
	)

	return m
}

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
