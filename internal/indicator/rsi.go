package indicator

import (
	"math"

	"equity-navigator/internal/series"
)

// RSI returns the Relative Strength Index of Close: rolling means of
// positive and negative close deltas over the window, RS = avgGain/avgLoss,
// RSI = 100 - 100/(1+RS). The first `window` points are undefined (the
// first delta itself is undefined). A zero average loss reports 100, a
// zero average gain against real losses reports 0; the result is always
// inside [0, 100].
func RSI(f series.Frame, window int) series.Series {
	if window <= 0 {
		window = DefaultRSIWindow
	}

	delta := f.Close.Diff()
	gains := delta.Clip(0, math.Inf(1))
	losses := delta.Clip(math.Inf(-1), 0).Neg()

	avgGain := gains.Rolling(window).Mean()
	avgLoss := losses.Rolling(window).Mean()

	ts := f.Times()
	values := make([]float64, f.Len())
	for i := range values {
		if !avgGain.Defined(i) || !avgLoss.Defined(i) {
			values[i] = math.NaN()
			continue
		}
		loss := avgLoss.At(i)
		if loss == 0 {
			values[i] = 100.0
			continue
		}
		rs := avgGain.At(i) / loss
		values[i] = 100.0 - 100.0/(1.0+rs)
	}
	return series.New(ts, values)
}
