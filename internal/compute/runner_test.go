package compute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-navigator/internal/indicator"
	"equity-navigator/internal/model"
	"equity-navigator/internal/series"
)

func dailyBars(n int, startClose float64) []model.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		c := startClose + float64(i)
		bars[i] = model.Bar{
			TS:     base.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 500,
		}
	}
	return bars
}

var smaSet = []indicator.Config{{Type: "SMA", Window: 3}}

func TestRunner_PerTickerIsolation(t *testing.T) {
	bad := dailyBars(5, 10)
	bad[3].TS = bad[2].TS // duplicate timestamp

	inputs := []Input{
		{Ticker: "AAPL", Bars: dailyBars(10, 150)},
		{Ticker: "BROKEN", Bars: bad},
		{Ticker: "MSFT", Bars: dailyBars(10, 300)},
	}

	results := NewRunner(4, nil, nil).Run(context.Background(), inputs, smaSet)
	require.Len(t, results, 3)

	// Results come back in input order.
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "BROKEN", results[1].Ticker)
	assert.Equal(t, "MSFT", results[2].Ticker)

	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	require.ErrorIs(t, results[1].Err, series.ErrDuplicateTimestamp)
	assert.Equal(t, StatusOK, results[2].Status)

	require.Len(t, results[0].Overlays, 1)
	assert.Equal(t, "SMA_3", results[0].Overlays[0].Name)
	assert.Equal(t, 10, results[0].Overlays[0].Series.Len())
}

func TestRunner_UnorderedBarsFailTicker(t *testing.T) {
	bad := dailyBars(5, 10)
	bad[3].TS = bad[1].TS // jumps backward past bar 2

	results := NewRunner(1, nil, nil).Run(context.Background(), []Input{
		{Ticker: "BROKEN", Bars: bad},
	}, smaSet)

	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	require.ErrorIs(t, results[0].Err, series.ErrUnorderedBars)
}

func TestRunner_EmptyBarsAreEmptyNotFailed(t *testing.T) {
	inputs := []Input{{Ticker: "NODATA"}}
	results := NewRunner(2, nil, nil).Run(context.Background(), inputs, smaSet)

	require.Len(t, results, 1)
	assert.Equal(t, StatusEmpty, results[0].Status)
	assert.NoError(t, results[0].Err)
	// The named shape survives at zero length.
	require.Len(t, results[0].Overlays, 1)
	assert.Equal(t, "SMA_3", results[0].Overlays[0].Name)
	assert.Equal(t, 0, results[0].Overlays[0].Series.Len())
}

func TestRunner_FormulaFailureDoesNotFailTicker(t *testing.T) {
	inputs := []Input{{Ticker: "AAPL", Bars: dailyBars(10, 100)}}
	configs := []indicator.Config{
		{Type: "SMA", Window: 3},
		{Type: "FORMULA", Name: "BAD", Formula: "not_a_column + 1"},
	}

	results := NewRunner(1, nil, nil).Run(context.Background(), inputs, configs)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)
	require.Len(t, results[0].Overlays, 1)
	assert.Equal(t, []string{"BAD"}, results[0].SkippedFormulas)
}

func TestRunner_CancelledContextStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []Input{
		{Ticker: "A", Bars: dailyBars(5, 1)},
		{Ticker: "B", Bars: dailyBars(5, 2)},
	}
	results := NewRunner(1, nil, nil).Run(ctx, inputs, smaSet)

	require.Len(t, results, 2)
	for _, res := range results {
		assert.Equal(t, StatusFailed, res.Status)
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestRunner_ManyTickersParallel(t *testing.T) {
	inputs := make([]Input, 50)
	for i := range inputs {
		inputs[i] = Input{Ticker: string(rune('A' + i%26)), Bars: dailyBars(30, float64(i+1))}
	}

	results := NewRunner(8, nil, nil).Run(context.Background(), inputs, []indicator.Config{
		{Type: "SMA", Window: 5},
		{Type: "MACD"},
		{Type: "ICHIMOKU"},
	})

	require.Len(t, results, 50)
	for i, res := range results {
		assert.Equal(t, inputs[i].Ticker, res.Ticker, "result %d out of order", i)
		assert.Equal(t, StatusOK, res.Status)
		assert.Len(t, res.Overlays, 8) // SMA + MACD(2) + Ichimoku(5)
		for _, o := range res.Overlays {
			assert.Equal(t, 30, o.Series.Len())
		}
	}
}
