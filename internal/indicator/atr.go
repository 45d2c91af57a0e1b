package indicator

import (
	"math"

	"equity-navigator/internal/series"
)

// ATR returns the Average True Range: the rolling mean of
// TR = max(High-Low, |High-prevClose|, |Low-prevClose|).
// The first bar has no previous close, so TR[0] = High[0]-Low[0] (the
// prevClose = Close[0] convention); ATR is therefore defined from index
// window-1.
func ATR(f series.Frame, window int) series.Series {
	if window <= 0 {
		window = DefaultATRWindow
	}

	ts := f.Times()
	tr := make([]float64, f.Len())
	for i := range tr {
		highLow := f.High.At(i) - f.Low.At(i)
		if i == 0 {
			tr[i] = highLow
			continue
		}
		prevClose := f.Close.At(i - 1)
		tr[i] = math.Max(highLow, math.Max(
			math.Abs(f.High.At(i)-prevClose),
			math.Abs(f.Low.At(i)-prevClose),
		))
	}
	return series.New(ts, tr).Rolling(window).Mean()
}
