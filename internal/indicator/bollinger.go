package indicator

import "equity-navigator/internal/series"

// Bollinger returns the middle band (SMA of Close) and the upper/lower
// bands at +/-mult standard deviations. The deviation is the sample
// standard deviation (ddof=1). The first window-1 points are undefined,
// and upper-middle == middle-lower at every defined point.
func Bollinger(f series.Frame, window int, mult float64) (middle, upper, lower series.Series) {
	if window <= 0 {
		window = DefaultBandWindow
	}
	if mult <= 0 {
		mult = DefaultBandMult
	}
	middle = f.Close.Rolling(window).Mean()
	band := f.Close.Rolling(window).Std().MulScalar(mult)
	upper = middle.Add(band)
	lower = middle.Sub(band)
	return middle, upper, lower
}
