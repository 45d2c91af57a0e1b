// Package series provides the index-aligned value sequences that all
// indicator math is built on: a Series is one value per input bar, with
// undefined points (warm-up regions, degenerate denominators) encoded as
// NaN and distinguishable from a computed zero.
//
// All operations are pure: they return new Series and never mutate their
// receiver, so concurrent use across tickers needs no locking.
package series

import (
	"math"
	"time"
)

// Series is an ordered sequence of per-bar values aligned 1:1 with the
// bar series it was derived from. Undefined points are NaN; use Defined
// to tell them apart from real zeros. Chart layers are expected to
// skip-render undefined points, never plot them as zero.
type Series struct {
	ts     []time.Time
	values []float64
}

// New creates a Series from aligned timestamps and values.
// Panics if the slice lengths differ; alignment is a package invariant.
func New(ts []time.Time, values []float64) Series {
	if len(ts) != len(values) {
		panic("series: timestamp/value length mismatch")
	}
	return Series{ts: ts, values: values}
}

// Const creates a Series aligned with like, holding c at every point.
func Const(like Series, c float64) Series {
	values := make([]float64, like.Len())
	for i := range values {
		values[i] = c
	}
	return Series{ts: like.ts, values: values}
}

// Undefined creates an all-undefined Series over the given timestamps.
func Undefined(ts []time.Time) Series {
	values := make([]float64, len(ts))
	for i := range values {
		values[i] = math.NaN()
	}
	return Series{ts: ts, values: values}
}

// Len returns the number of points, defined or not.
func (s Series) Len() int { return len(s.values) }

// At returns the value at index i. NaN means undefined.
func (s Series) At(i int) float64 { return s.values[i] }

// Time returns the timestamp at index i.
func (s Series) Time(i int) time.Time { return s.ts[i] }

// Defined reports whether the point at index i holds a computed value.
func (s Series) Defined(i int) bool { return !math.IsNaN(s.values[i]) }

// DefinedCount returns the number of defined points.
func (s Series) DefinedCount() int {
	n := 0
	for i := range s.values {
		if !math.IsNaN(s.values[i]) {
			n++
		}
	}
	return n
}

// Values returns a copy of the raw values. NaN marks undefined points.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// derive allocates an output buffer sharing the receiver's timestamps.
func (s Series) derive() Series {
	return Series{ts: s.ts, values: make([]float64, len(s.values))}
}

func (s Series) binOp(o Series, f func(a, b float64) float64) Series {
	if len(s.values) != len(o.values) {
		panic("series: length mismatch in binary operation")
	}
	out := s.derive()
	for i := range s.values {
		a, b := s.values[i], o.values[i]
		if math.IsNaN(a) || math.IsNaN(b) {
			out.values[i] = math.NaN()
			continue
		}
		out.values[i] = f(a, b)
	}
	return out
}

func (s Series) mapOp(f func(v float64) float64) Series {
	out := s.derive()
	for i, v := range s.values {
		if math.IsNaN(v) {
			out.values[i] = math.NaN()
			continue
		}
		out.values[i] = f(v)
	}
	return out
}

// Add returns s + o pointwise. Panics on length mismatch.
func (s Series) Add(o Series) Series {
	return s.binOp(o, func(a, b float64) float64 { return a + b })
}

// Sub returns s - o pointwise. Panics on length mismatch.
func (s Series) Sub(o Series) Series {
	return s.binOp(o, func(a, b float64) float64 { return a - b })
}

// Mul returns s * o pointwise. Panics on length mismatch.
func (s Series) Mul(o Series) Series {
	return s.binOp(o, func(a, b float64) float64 { return a * b })
}

// Div returns s / o pointwise. A zero denominator yields an undefined
// point rather than +/-Inf, so degenerate ratios never reach chart data.
func (s Series) Div(o Series) Series {
	return s.binOp(o, func(a, b float64) float64 {
		if b == 0 {
			return math.NaN()
		}
		return a / b
	})
}

// AddScalar returns s + c pointwise.
func (s Series) AddScalar(c float64) Series {
	return s.mapOp(func(v float64) float64 { return v + c })
}

// SubScalar returns s - c pointwise.
func (s Series) SubScalar(c float64) Series {
	return s.mapOp(func(v float64) float64 { return v - c })
}

// MulScalar returns s * c pointwise.
func (s Series) MulScalar(c float64) Series {
	return s.mapOp(func(v float64) float64 { return v * c })
}

// DivScalar returns s / c pointwise; c == 0 yields all-undefined.
func (s Series) DivScalar(c float64) Series {
	if c == 0 {
		return Undefined(s.ts)
	}
	return s.mapOp(func(v float64) float64 { return v / c })
}

// Clip limits defined points to [lo, hi] pointwise.
func (s Series) Clip(lo, hi float64) Series {
	return s.mapOp(func(v float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	})
}

// Abs returns |s| pointwise.
func (s Series) Abs() Series { return s.mapOp(math.Abs) }

// Neg returns -s pointwise.
func (s Series) Neg() Series { return s.mapOp(func(v float64) float64 { return -v }) }

// Shift displaces the series in time by n bars while keeping its length.
// Positive n shifts forward (value at i comes from i-n, head undefined);
// negative n shifts backward (value at i comes from i-n, tail undefined).
func (s Series) Shift(n int) Series {
	out := s.derive()
	for i := range out.values {
		src := i - n
		if src < 0 || src >= len(s.values) {
			out.values[i] = math.NaN()
			continue
		}
		out.values[i] = s.values[src]
	}
	return out
}

// Diff returns the first difference s[i] - s[i-1]; index 0 is undefined.
func (s Series) Diff() Series {
	out := s.derive()
	for i := range out.values {
		if i == 0 || math.IsNaN(s.values[i]) || math.IsNaN(s.values[i-1]) {
			out.values[i] = math.NaN()
			continue
		}
		out.values[i] = s.values[i] - s.values[i-1]
	}
	return out
}

// Cumsum returns the running sum from the series start. Undefined input
// points stay undefined and do not contribute to the running total.
func (s Series) Cumsum() Series {
	out := s.derive()
	sum := 0.0
	for i, v := range s.values {
		if math.IsNaN(v) {
			out.values[i] = math.NaN()
			continue
		}
		sum += v
		out.values[i] = sum
	}
	return out
}
