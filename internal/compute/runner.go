// Package compute runs the indicator engine across many tickers in
// parallel. Each ticker's bar series is independent, so the work is
// embarrassingly parallel: a fixed worker pool, no shared state between
// jobs, and strict per-ticker failure isolation: one bad series never
// aborts its siblings.
package compute

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"equity-navigator/internal/indicator"
	"equity-navigator/internal/metrics"
	"equity-navigator/internal/model"
	"equity-navigator/internal/series"
)

// Status classifies one ticker's batch outcome so callers can tell "no
// data" apart from "bad input" without aborting the batch.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Input is one ticker's bar series as handed over by the data layer.
type Input struct {
	Ticker string
	Bars   []model.Bar
}

// Result is one ticker's computed overlays plus its outcome.
type Result struct {
	Ticker          string
	Status          Status
	Overlays        []indicator.Overlay
	SkippedFormulas []string
	Err             error
}

// Runner computes a shared indicator set across tickers on a fixed-size
// worker pool.
type Runner struct {
	workers int
	engine  *indicator.Engine
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRunner creates a Runner. workers < 1 falls back to 1; m may be nil
// when instrumentation is not wanted (tests, library use).
func NewRunner(workers int, log *slog.Logger, m *metrics.Metrics) *Runner {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		workers: workers,
		engine:  indicator.NewEngine(),
		log:     log,
		metrics: m,
	}
}

// Run computes the configured indicators for every input and returns one
// Result per input, in input order. Cancelling ctx stops dispatching
// remaining tickers; already-running tickers finish (each completes in
// time proportional to its series length).
func (r *Runner) Run(ctx context.Context, inputs []Input, configs []indicator.Config) []Result {
	start := time.Now()
	results := make([]Result, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.runOne(inputs[idx], configs)
			}
		}()
	}

dispatch:
	for i := range inputs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if results[i].Status == "" {
			results[i] = Result{Ticker: inputs[i].Ticker, Status: StatusFailed, Err: ctx.Err()}
		}
		r.observe(&results[i], configs)
	}
	if r.metrics != nil {
		r.metrics.BatchDur.Observe(time.Since(start).Seconds())
	}
	return results
}

func (r *Runner) runOne(in Input, configs []indicator.Config) Result {
	start := time.Now()

	frame, err := series.FromBars(in.Bars)
	if err != nil {
		r.log.Warn("rejecting bar series", "ticker", in.Ticker, "err", err)
		return Result{Ticker: in.Ticker, Status: StatusFailed, Err: err}
	}

	overlays, skipped, err := r.engine.Compute(frame, configs)
	if err != nil {
		return Result{Ticker: in.Ticker, Status: StatusFailed, Err: err}
	}
	if r.metrics != nil {
		r.metrics.IndicatorComputeDur.Observe(time.Since(start).Seconds())
	}

	status := StatusOK
	if len(in.Bars) == 0 {
		// Legitimate no-output case: overlays keep their named shape
		// at zero length.
		status = StatusEmpty
	}
	if len(skipped) > 0 {
		r.log.Warn("user formulas produced no result", "ticker", in.Ticker, "formulas", skipped)
	}
	return Result{Ticker: in.Ticker, Status: status, Overlays: overlays, SkippedFormulas: skipped}
}

func (r *Runner) observe(res *Result, configs []indicator.Config) {
	if r.metrics == nil {
		return
	}
	r.metrics.TickersTotal.WithLabelValues(string(res.Status)).Inc()
	r.metrics.IndicatorsTotal.Add(float64(len(res.Overlays)))

	formulas := 0
	for _, cfg := range configs {
		if cfg.Type == "FORMULA" {
			formulas++
		}
	}
	if res.Status != StatusFailed && formulas > 0 {
		noResult := len(res.SkippedFormulas)
		r.metrics.FormulaEvals.WithLabelValues("no_result").Add(float64(noResult))
		r.metrics.FormulaEvals.WithLabelValues("ok").Add(float64(formulas - noResult))
	}
}
