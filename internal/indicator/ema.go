package indicator

import "equity-navigator/internal/series"

// EMA returns the exponential moving average of Close with smoothing
// factor α = 2/(window+1), seeded with the first close. It is defined
// from the first bar; early values are biased toward the seed, which is
// the standard recursive convention.
func EMA(f series.Frame, window int) series.Series {
	if window <= 0 {
		window = DefaultEMAWindow
	}
	return f.Close.EWM(window).Mean()
}
