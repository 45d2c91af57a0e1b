package indicator

import "equity-navigator/internal/series"

// SMA returns the simple moving average of Close over a trailing window.
// The first window-1 points are undefined.
func SMA(f series.Frame, window int) series.Series {
	if window <= 0 {
		window = DefaultSMAWindow
	}
	return f.Close.Rolling(window).Mean()
}
