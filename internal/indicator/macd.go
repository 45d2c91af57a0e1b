package indicator

import "equity-navigator/internal/series"

// MACD returns the Moving Average Convergence Divergence line and its
// signal line: MACD = EMA12(Close) - EMA26(Close), Signal = EMA9(MACD).
// Both are defined from the first bar, with early-bar instability
// inherited from EMA seeding.
func MACD(f series.Frame) (macd, signal series.Series) {
	fast := f.Close.EWM(macdFast).Mean()
	slow := f.Close.EWM(macdSlow).Mean()
	macd = fast.Sub(slow)
	signal = macd.EWM(macdSignal).Mean()
	return macd, signal
}
