package series

import "math"

// Rolling is a trailing-window view over a Series. All window aggregates
// share one primitive (apply), so every indicator gets identical warm-up
// and NaN semantics: the first window-1 points are undefined, and a window
// containing any undefined point is undefined.
type Rolling struct {
	s      Series
	window int
}

// Rolling returns a trailing-window view of width window.
// Panics if window < 1; callers validate user-supplied windows first.
func (s Series) Rolling(window int) Rolling {
	if window < 1 {
		panic("series: rolling window must be >= 1")
	}
	return Rolling{s: s, window: window}
}

func (r Rolling) apply(agg func(win []float64) float64) Series {
	out := r.s.derive()
	for i := range out.values {
		if i < r.window-1 {
			out.values[i] = math.NaN()
			continue
		}
		win := r.s.values[i-r.window+1 : i+1]
		defined := true
		for _, v := range win {
			if math.IsNaN(v) {
				defined = false
				break
			}
		}
		if !defined {
			out.values[i] = math.NaN()
			continue
		}
		out.values[i] = agg(win)
	}
	return out
}

// Mean returns the rolling arithmetic mean.
func (r Rolling) Mean() Series {
	return r.apply(func(win []float64) float64 {
		sum := 0.0
		for _, v := range win {
			sum += v
		}
		return sum / float64(len(win))
	})
}

// Sum returns the rolling sum.
func (r Rolling) Sum() Series {
	return r.apply(func(win []float64) float64 {
		sum := 0.0
		for _, v := range win {
			sum += v
		}
		return sum
	})
}

// Min returns the rolling minimum.
func (r Rolling) Min() Series {
	return r.apply(func(win []float64) float64 {
		m := win[0]
		for _, v := range win[1:] {
			if v < m {
				m = v
			}
		}
		return m
	})
}

// Max returns the rolling maximum.
func (r Rolling) Max() Series {
	return r.apply(func(win []float64) float64 {
		m := win[0]
		for _, v := range win[1:] {
			if v > m {
				m = v
			}
		}
		return m
	})
}

// Std returns the rolling sample standard deviation (ddof=1).
// A window of 1 is undefined.
func (r Rolling) Std() Series {
	return r.apply(func(win []float64) float64 {
		n := len(win)
		if n < 2 {
			return math.NaN()
		}
		mean := 0.0
		for _, v := range win {
			mean += v
		}
		mean /= float64(n)
		sumSq := 0.0
		for _, v := range win {
			d := v - mean
			sumSq += d * d
		}
		return math.Sqrt(sumSq / float64(n-1))
	})
}

// EWM is an exponentially-weighted view over a Series with smoothing
// factor α = 2/(span+1).
type EWM struct {
	s    Series
	span int
}

// EWM returns an exponentially-weighted view with the given span.
// Panics if span < 1.
func (s Series) EWM(span int) EWM {
	if span < 1 {
		panic("series: ewm span must be >= 1")
	}
	return EWM{s: s, span: span}
}

// Mean returns the exponential moving average, seeded with the first
// defined value, so it is defined from that point on with early values
// biased toward the seed, the standard recursive convention. Undefined
// input points stay undefined and leave the recurrence state untouched.
func (e EWM) Mean() Series {
	alpha := 2.0 / float64(e.span+1)
	out := e.s.derive()
	ema := math.NaN()
	for i, v := range e.s.values {
		if math.IsNaN(v) {
			out.values[i] = math.NaN()
			continue
		}
		if math.IsNaN(ema) {
			ema = v
		} else {
			ema = alpha*v + (1-alpha)*ema
		}
		out.values[i] = ema
	}
	return out
}
