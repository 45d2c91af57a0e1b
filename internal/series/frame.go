package series

import (
	"errors"
	"fmt"
	"time"

	"equity-navigator/internal/model"
)

var (
	// ErrUnorderedBars means bar timestamps are not strictly increasing.
	ErrUnorderedBars = errors.New("series: bars out of timestamp order")

	// ErrDuplicateTimestamp means two bars share one timestamp.
	ErrDuplicateTimestamp = errors.New("series: duplicate bar timestamp")
)

// Frame is the normalized form a bar series takes before any transform
// runs: the five OHLCV columns decomposed into index-aligned Series.
// Validation happens exactly once here; everything downstream can assume
// ordered, duplicate-free input.
type Frame struct {
	Open   Series
	High   Series
	Low    Series
	Close  Series
	Volume Series
}

// FromBars validates a bar series and decomposes it into columns.
// Empty input yields an empty Frame, which every transform treats as a
// legitimate "no output" case.
func FromBars(bars []model.Bar) (Frame, error) {
	ts := make([]time.Time, len(bars))
	open := make([]float64, len(bars))
	high := make([]float64, len(bars))
	low := make([]float64, len(bars))
	closes := make([]float64, len(bars))
	volume := make([]float64, len(bars))

	for i, b := range bars {
		if i > 0 {
			switch {
			case b.TS.Equal(bars[i-1].TS):
				return Frame{}, fmt.Errorf("%w: %s", ErrDuplicateTimestamp, b.TS.Format(time.RFC3339))
			case b.TS.Before(bars[i-1].TS):
				return Frame{}, fmt.Errorf("%w: %s", ErrUnorderedBars, b.TS.Format(time.RFC3339))
			}
		}
		ts[i] = b.TS
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		closes[i] = b.Close
		volume[i] = b.Volume
	}

	return Frame{
		Open:   New(ts, open),
		High:   New(ts, high),
		Low:    New(ts, low),
		Close:  New(ts, closes),
		Volume: New(ts, volume),
	}, nil
}

// Len returns the number of bars the frame was built from.
func (f Frame) Len() int { return f.Close.Len() }

// Times returns the shared timestamp index.
func (f Frame) Times() []time.Time {
	out := make([]time.Time, f.Close.Len())
	for i := range out {
		out[i] = f.Close.Time(i)
	}
	return out
}

// Column resolves one of the five OHLCV column names, the only
// identifiers the formula evaluator may bind.
func (f Frame) Column(name string) (Series, bool) {
	switch name {
	case "Open":
		return f.Open, true
	case "High":
		return f.High, true
	case "Low":
		return f.Low, true
	case "Close":
		return f.Close, true
	case "Volume":
		return f.Volume, true
	}
	return Series{}, false
}
