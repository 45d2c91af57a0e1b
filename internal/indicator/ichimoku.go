package indicator

import "equity-navigator/internal/series"

// Ichimoku holds the five cloud component series.
type Ichimoku struct {
	Tenkan  series.Series // (max High(9) + min Low(9)) / 2
	Kijun   series.Series // (max High(26) + min Low(26)) / 2
	SenkouA series.Series // (Tenkan + Kijun) / 2, shifted forward 26 bars
	SenkouB series.Series // (max High(52) + min Low(52)) / 2, shifted forward 26 bars
	Chikou  series.Series // Close shifted backward 26 bars
}

// IchimokuCloud computes the Ichimoku Cloud with the conventional
// 9/26/52 windows and a 26-bar displacement. Each component carries its
// own warm-up; the Senkou spans pick up an extra undefined head from the
// forward shift, and Chikou is undefined over the final 26 bars.
func IchimokuCloud(f series.Frame) Ichimoku {
	mid := func(window int) series.Series {
		high := f.High.Rolling(window).Max()
		low := f.Low.Rolling(window).Min()
		return high.Add(low).MulScalar(0.5)
	}

	tenkan := mid(ichimokuTenkan)
	kijun := mid(ichimokuKijun)

	return Ichimoku{
		Tenkan:  tenkan,
		Kijun:   kijun,
		SenkouA: tenkan.Add(kijun).MulScalar(0.5).Shift(ichimokuDisplacement),
		SenkouB: mid(ichimokuSenkouB).Shift(ichimokuDisplacement),
		Chikou:  f.Close.Shift(-ichimokuDisplacement),
	}
}
