package indicator

import (
	"math"
	"testing"
	"time"

	"equity-navigator/internal/model"
	"equity-navigator/internal/series"
)

// ────────────────────────────────────────────────────────────
// Helpers
// ────────────────────────────────────────────────────────────

var testBase = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// closeBars builds daily bars from close prices; highs/lows bracket the
// close so every indicator has sane inputs.
func closeBars(closes ...float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			TS:     testBase.AddDate(0, 0, i),
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func frame(t *testing.T, bars []model.Bar) series.Frame {
	t.Helper()
	f, err := series.FromBars(bars)
	if err != nil {
		t.Fatalf("FromBars: %v", err)
	}
	return f
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

// assertWarmup checks that exactly the first n points are undefined and
// everything after is a finite number.
func assertWarmup(t *testing.T, label string, s series.Series, n int) {
	t.Helper()
	for i := 0; i < s.Len(); i++ {
		if i < n {
			if s.Defined(i) {
				t.Errorf("%s: point %d should be undefined, got %v", label, i, s.At(i))
			}
			continue
		}
		if !s.Defined(i) {
			t.Errorf("%s: point %d should be defined", label, i)
		} else if math.IsInf(s.At(i), 0) {
			t.Errorf("%s: point %d is infinite", label, i)
		}
	}
}

// ────────────────────────────────────────────────────────────
// SMA
// ────────────────────────────────────────────────────────────

func TestSMA_Correctness_Window3(t *testing.T) {
	// Prices: 100, 102, 104, 103, 105
	// SMA(3) at bar 3: (100+102+104)/3 = 102.0
	// SMA(3) at bar 4: (102+104+103)/3 = 103.0
	// SMA(3) at bar 5: (104+103+105)/3 = 104.0
	f := frame(t, closeBars(100, 102, 104, 103, 105))
	sma := SMA(f, 3)

	assertWarmup(t, "SMA(3)", sma, 2)
	expected := []float64{102.0, 103.0, 104.0}
	for i, want := range expected {
		assertClose(t, "SMA(3)", sma.At(i+2), want, 0.0001)
	}
}

func TestSMA_LengthMatchesInput(t *testing.T) {
	f := frame(t, closeBars(10, 11, 12, 13))
	if got := SMA(f, 20).Len(); got != 4 {
		t.Errorf("SMA length = %d, want 4", got)
	}
	// Window larger than the series: all points undefined, none zero.
	assertWarmup(t, "SMA(20) short series", SMA(f, 20), 4)
}

// ────────────────────────────────────────────────────────────
// EMA
// ────────────────────────────────────────────────────────────

func TestEMA_SeededWithFirstClose(t *testing.T) {
	// Window 3 → α = 0.5. Prices 10, 11, 12:
	// EMA[0] = 10; EMA[1] = 0.5·11 + 0.5·10 = 10.5; EMA[2] = 11.25
	f := frame(t, closeBars(10, 11, 12))
	ema := EMA(f, 3)

	assertWarmup(t, "EMA(3)", ema, 0)
	assertClose(t, "EMA[0]", ema.At(0), 10.0, 0.0001)
	assertClose(t, "EMA[1]", ema.At(1), 10.5, 0.0001)
	assertClose(t, "EMA[2]", ema.At(2), 11.25, 0.0001)
}

// ────────────────────────────────────────────────────────────
// RSI
// ────────────────────────────────────────────────────────────

func TestRSI_Correctness_Window2(t *testing.T) {
	// Prices 10, 11, 12, 11, 10 → deltas _, +1, +1, -1, -1
	// idx 2: avgGain=1, avgLoss=0           → RSI = 100 (zero-loss edge)
	// idx 3: avgGain=0.5, avgLoss=0.5, RS=1 → RSI = 50
	// idx 4: avgGain=0, avgLoss=1, RS=0     → RSI = 0 (zero-gain edge)
	f := frame(t, closeBars(10, 11, 12, 11, 10))
	rsi := RSI(f, 2)

	assertWarmup(t, "RSI(2)", rsi, 2)
	assertClose(t, "RSI[2]", rsi.At(2), 100.0, 0.0001)
	assertClose(t, "RSI[3]", rsi.At(3), 50.0, 0.0001)
	assertClose(t, "RSI[4]", rsi.At(4), 0.0, 0.0001)
}

func TestRSI_Bounded(t *testing.T) {
	closes := []float64{50, 52, 49, 55, 54, 54, 60, 41, 41, 70, 30, 90, 90, 90, 10}
	f := frame(t, closeBars(closes...))
	rsi := RSI(f, 4)

	for i := 0; i < rsi.Len(); i++ {
		if !rsi.Defined(i) {
			continue
		}
		if v := rsi.At(i); v < 0 || v > 100 {
			t.Errorf("RSI[%d] = %v out of [0, 100]", i, v)
		}
	}
}

func TestRSI_FlatSeriesReports100(t *testing.T) {
	// No losses at all → zero average loss at every defined point.
	f := frame(t, closeBars(100, 100, 100, 100, 100, 100))
	rsi := RSI(f, 3)
	for i := 3; i < rsi.Len(); i++ {
		assertClose(t, "RSI flat", rsi.At(i), 100.0, 0.0001)
	}
}

// ────────────────────────────────────────────────────────────
// MACD
// ────────────────────────────────────────────────────────────

func TestMACD_EqualsEMADifference(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/5)
	}
	f := frame(t, closeBars(closes...))

	macd, signal := MACD(f)
	ema12 := f.Close.EWM(12).Mean()
	ema26 := f.Close.EWM(26).Mean()

	assertWarmup(t, "MACD", macd, 0)
	assertWarmup(t, "MACD signal", signal, 0)
	for i := 0; i < macd.Len(); i++ {
		if macd.At(i) != ema12.At(i)-ema26.At(i) {
			t.Errorf("MACD[%d] = %v, want EMA12-EMA26 = %v", i, macd.At(i), ema12.At(i)-ema26.At(i))
		}
	}
}

// ────────────────────────────────────────────────────────────
// Bollinger Bands
// ────────────────────────────────────────────────────────────

func TestBollinger_Correctness_Window3(t *testing.T) {
	// Prices 10, 11, 12 → mean 11, sample std 1 → bands 11 +/- 2.
	f := frame(t, closeBars(10, 11, 12))
	middle, upper, lower := Bollinger(f, 3, 2)

	assertWarmup(t, "BB middle", middle, 2)
	assertClose(t, "BB middle", middle.At(2), 11.0, 0.0001)
	assertClose(t, "BB upper", upper.At(2), 13.0, 0.0001)
	assertClose(t, "BB lower", lower.At(2), 9.0, 0.0001)
}

func TestBollinger_Symmetry(t *testing.T) {
	closes := []float64{20, 22, 19, 25, 24, 21, 27, 26, 23, 28}
	f := frame(t, closeBars(closes...))
	middle, upper, lower := Bollinger(f, 4, 2)

	for i := 0; i < middle.Len(); i++ {
		if !middle.Defined(i) {
			continue
		}
		up := upper.At(i) - middle.At(i)
		down := middle.At(i) - lower.At(i)
		assertClose(t, "BB symmetry", up, down, 1e-9)
	}
}

// ────────────────────────────────────────────────────────────
// Stochastic Oscillator
// ────────────────────────────────────────────────────────────

func TestStochastic_Correctness(t *testing.T) {
	bars := []model.Bar{
		{TS: testBase, High: 10, Low: 8, Close: 9, Volume: 1},
		{TS: testBase.AddDate(0, 0, 1), High: 11, Low: 9, Close: 10, Volume: 1},
		{TS: testBase.AddDate(0, 0, 2), High: 12, Low: 10, Close: 11, Volume: 1},
		{TS: testBase.AddDate(0, 0, 3), High: 13, Low: 11, Close: 12, Volume: 1},
	}
	f := frame(t, bars)
	k, d := Stochastic(f, 3, 2)

	// idx 2: min Low = 8, max High = 12 → %K = 100·(11-8)/4 = 75
	// idx 3: min Low = 9, max High = 13 → %K = 100·(12-9)/4 = 75
	assertWarmup(t, "%K", k, 2)
	assertClose(t, "%K[2]", k.At(2), 75.0, 0.0001)
	assertClose(t, "%K[3]", k.At(3), 75.0, 0.0001)
	// %D warm-up: k + d - 2 = 3
	assertWarmup(t, "%D", d, 3)
	assertClose(t, "%D[3]", d.At(3), 75.0, 0.0001)
}

func TestStochastic_FlatWindowUndefined(t *testing.T) {
	bars := make([]model.Bar, 5)
	for i := range bars {
		bars[i] = model.Bar{TS: testBase.AddDate(0, 0, i), High: 10, Low: 10, Close: 10, Volume: 1}
	}
	f := frame(t, bars)
	k, _ := Stochastic(f, 3, 2)

	// max == min everywhere: the ratio is undefined, never a fault.
	for i := 0; i < k.Len(); i++ {
		if k.Defined(i) {
			t.Errorf("%%K[%d] should be undefined on a flat window, got %v", i, k.At(i))
		}
	}
}

// ────────────────────────────────────────────────────────────
// ATR
// ────────────────────────────────────────────────────────────

func TestATR_Correctness_Window2(t *testing.T) {
	bars := []model.Bar{
		{TS: testBase, High: 10, Low: 8, Close: 9, Volume: 1},
		{TS: testBase.AddDate(0, 0, 1), High: 12, Low: 9, Close: 11, Volume: 1},
		{TS: testBase.AddDate(0, 0, 2), High: 11, Low: 10, Close: 10.5, Volume: 1},
	}
	f := frame(t, bars)
	atr := ATR(f, 2)

	// TR[0] = 10-8 = 2 (no previous close)
	// TR[1] = max(3, |12-9|, |9-9|) = 3
	// TR[2] = max(1, |11-11|, |10-11|) = 1
	assertWarmup(t, "ATR(2)", atr, 1)
	assertClose(t, "ATR[1]", atr.At(1), 2.5, 0.0001)
	assertClose(t, "ATR[2]", atr.At(2), 2.0, 0.0001)
}

// ────────────────────────────────────────────────────────────
// VWAP
// ────────────────────────────────────────────────────────────

func TestVWAP_Correctness(t *testing.T) {
	bars := []model.Bar{
		{TS: testBase, High: 10.5, Low: 9.5, Close: 10, Volume: 100},
		{TS: testBase.AddDate(0, 0, 1), High: 12.5, Low: 11.5, Close: 12, Volume: 300},
	}
	f := frame(t, bars)
	vwap := VWAP(f)

	assertClose(t, "VWAP[0]", vwap.At(0), 10.0, 0.0001)
	// (10·100 + 12·300) / 400 = 11.5
	assertClose(t, "VWAP[1]", vwap.At(1), 11.5, 0.0001)
}

func TestVWAP_WithinCloseRangeUnderPositiveVolume(t *testing.T) {
	closes := []float64{50, 55, 45, 60, 52, 58, 49}
	f := frame(t, closeBars(closes...))
	vwap := VWAP(f)

	lo, hi := closes[0], closes[0]
	for i, c := range closes {
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
		if v := vwap.At(i); v < lo-1e-9 || v > hi+1e-9 {
			t.Errorf("VWAP[%d] = %v outside prefix close range [%v, %v]", i, v, lo, hi)
		}
	}
}

func TestVWAP_ZeroVolumeHeadUndefined(t *testing.T) {
	bars := closeBars(10, 11, 12)
	bars[0].Volume = 0
	bars[1].Volume = 0
	f := frame(t, bars)
	vwap := VWAP(f)

	if vwap.Defined(0) || vwap.Defined(1) {
		t.Error("VWAP should be undefined while cumulative volume is zero")
	}
	assertClose(t, "VWAP[2]", vwap.At(2), 12.0, 0.0001)
}

// ────────────────────────────────────────────────────────────
// Ichimoku Cloud
// ────────────────────────────────────────────────────────────

func TestIchimoku_WarmupsAndShifts(t *testing.T) {
	n := 120
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	f := frame(t, closeBars(closes...))
	cloud := IchimokuCloud(f)

	assertWarmup(t, "Tenkan", cloud.Tenkan, 8)
	assertWarmup(t, "Kijun", cloud.Kijun, 25)
	// Senkou A: Kijun warm-up 25 plus the 26-bar forward displacement.
	assertWarmup(t, "SenkouA", cloud.SenkouA, 51)
	// Senkou B: 52-bar warm-up plus displacement.
	assertWarmup(t, "SenkouB", cloud.SenkouB, 77)

	// Chikou is Close shifted backward: defined head, undefined tail.
	for i := 0; i < n; i++ {
		if i < n-26 {
			if !cloud.Chikou.Defined(i) {
				t.Errorf("Chikou[%d] should be defined", i)
			} else if cloud.Chikou.At(i) != closes[i+26] {
				t.Errorf("Chikou[%d] = %v, want Close[%d] = %v", i, cloud.Chikou.At(i), i+26, closes[i+26])
			}
		} else if cloud.Chikou.Defined(i) {
			t.Errorf("Chikou[%d] should be undefined at the tail", i)
		}
	}

	// Senkou A carries the value computed 26 bars earlier.
	for i := 51; i < n; i++ {
		want := (cloud.Tenkan.At(i-26) + cloud.Kijun.At(i-26)) / 2
		assertClose(t, "SenkouA displacement", cloud.SenkouA.At(i), want, 1e-9)
	}
}

// ────────────────────────────────────────────────────────────
// Empty input
// ────────────────────────────────────────────────────────────

func TestIndicators_EmptyInput(t *testing.T) {
	f := frame(t, nil)

	if got := SMA(f, 20).Len(); got != 0 {
		t.Errorf("SMA on empty input: length %d, want 0", got)
	}
	if got := RSI(f, 14).Len(); got != 0 {
		t.Errorf("RSI on empty input: length %d, want 0", got)
	}
	macd, signal := MACD(f)
	if macd.Len() != 0 || signal.Len() != 0 {
		t.Error("MACD on empty input should be zero-length")
	}
	cloud := IchimokuCloud(f)
	if cloud.SenkouA.Len() != 0 || cloud.Chikou.Len() != 0 {
		t.Error("Ichimoku on empty input should be zero-length")
	}
	if got := VWAP(f).Len(); got != 0 {
		t.Errorf("VWAP on empty input: length %d, want 0", got)
	}
}

// ────────────────────────────────────────────────────────────
// Beta
// ────────────────────────────────────────────────────────────

func priceSeries(prices ...float64) series.Series {
	ts := make([]time.Time, len(prices))
	for i := range ts {
		ts[i] = testBase.AddDate(0, 0, i)
	}
	return series.New(ts, prices)
}

func TestBeta_DoubledReturns(t *testing.T) {
	// Benchmark returns +10%, -10%; asset returns +20%, -20%.
	benchmark := priceSeries(100, 110, 99)
	asset := priceSeries(100, 120, 96)

	beta, err := Beta(asset, benchmark)
	if err != nil {
		t.Fatalf("Beta: %v", err)
	}
	assertClose(t, "beta", beta, 2.0, 1e-9)
}

func TestBeta_FlatBenchmarkUnavailable(t *testing.T) {
	benchmark := priceSeries(100, 100, 100, 100)
	asset := priceSeries(100, 105, 95, 102)

	if _, err := Beta(asset, benchmark); err == nil {
		t.Fatal("flat benchmark should make beta unavailable")
	}
}

func TestBeta_TooFewPoints(t *testing.T) {
	if _, err := Beta(priceSeries(100, 101), priceSeries(100, 102)); err == nil {
		t.Fatal("a single paired return should make beta unavailable")
	}
	if _, err := Beta(priceSeries(100, 101, 102), priceSeries(100, 102)); err == nil {
		t.Fatal("misaligned series should make beta unavailable")
	}
}
