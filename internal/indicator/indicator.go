// Package indicator provides technical indicator calculations over OHLCV
// bar series.
//
// Every indicator is a pure function from a normalized Frame (plus
// parameters) to one or more named Series, index-aligned with the input
// bars. There is no shared mutable state between calls, so series for
// different tickers can be computed concurrently without locking. Warm-up
// regions where a lookback window is not yet filled come out as undefined
// points, never as zeros.
package indicator

import "equity-navigator/internal/series"

// Default lookback windows, matching common charting conventions.
const (
	DefaultSMAWindow  = 20
	DefaultEMAWindow  = 20
	DefaultRSIWindow  = 14
	DefaultBandWindow = 20
	DefaultBandMult   = 2.0
	DefaultStochK     = 14
	DefaultStochD     = 3
	DefaultATRWindow  = 14
)

// MACD and Ichimoku use fixed, conventional spans.
const (
	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	ichimokuTenkan       = 9
	ichimokuKijun        = 26
	ichimokuSenkouB      = 52
	ichimokuDisplacement = 26
)

// Overlay is one named output series, ready for the chart layer.
type Overlay struct {
	Name   string
	Series series.Series
}

// Config declares a single indicator to compute, as listed in an
// indicator-set file. Zero parameter values select the type's default.
type Config struct {
	Type    string  `yaml:"type"`              // SMA, EMA, RSI, MACD, BOLLINGER, STOCH, ATR, VWAP, ICHIMOKU, FORMULA
	Window  int     `yaml:"window,omitempty"`  // primary lookback
	Smooth  int     `yaml:"smooth,omitempty"`  // %D window (STOCH only)
	Mult    float64 `yaml:"mult,omitempty"`    // band multiplier (BOLLINGER only)
	Formula string  `yaml:"formula,omitempty"` // expression (FORMULA only)
	Name    string  `yaml:"name,omitempty"`    // output name override (FORMULA only)
}
