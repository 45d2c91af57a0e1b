package indicator

import "equity-navigator/internal/series"

// VWAP returns the Volume Weighted Average Price, cumulative from the
// series start: cumsum(Close*Volume) / cumsum(Volume). It is not a
// rolling window. Points where the cumulative volume is still zero are
// undefined rather than a division fault.
func VWAP(f series.Frame) series.Series {
	priceVolume := f.Close.Mul(f.Volume).Cumsum()
	return priceVolume.Div(f.Volume.Cumsum())
}
