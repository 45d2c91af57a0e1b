package indicator

import "equity-navigator/internal/series"

// Stochastic returns the stochastic oscillator:
// %K = 100*(Close - min(Low, k)) / (max(High, k) - min(Low, k)) and
// %D = SMA(%K, d). A flat window (max == min) makes that point undefined
// rather than a fault. %K warms up over k-1 bars, %D over k+d-2.
func Stochastic(f series.Frame, kWindow, dWindow int) (k, d series.Series) {
	if kWindow <= 0 {
		kWindow = DefaultStochK
	}
	if dWindow <= 0 {
		dWindow = DefaultStochD
	}
	lowMin := f.Low.Rolling(kWindow).Min()
	highMax := f.High.Rolling(kWindow).Max()
	k = f.Close.Sub(lowMin).Div(highMax.Sub(lowMin)).MulScalar(100)
	d = k.Rolling(dWindow).Mean()
	return k, d
}
