// Package formula evaluates user-supplied indicator expressions over the
// five OHLCV columns of a bar series.
//
// This is the one place user-controlled text reaches an evaluation path,
// so the grammar is purpose-built and closed rather than a general
// evaluator with denied globals: the only resolvable identifiers are
// Open, High, Low, Close and Volume, the only calls are dotted methods
// from a fixed allow-list, and arguments are numeric literals. There is
// no attribute traversal, no ambient state, no I/O and no imports to
// reach. Every failure (lexical, syntactic, type, arity) collapses to
// ErrNoResult; evaluation never panics into the caller.
package formula

import (
	"errors"
	"fmt"

	"equity-navigator/internal/series"
)

// ErrNoResult is returned for every formula that does not evaluate to a
// Series aligned with the input bars, whatever the underlying reason.
var ErrNoResult = errors.New("formula: no result")

// Evaluate runs a formula against the columns of f and returns the
// resulting series. Example: "Close.rolling(10).mean()".
//
// The result must be a Series of the same length as the input; a scalar
// result (e.g. "2+2") is ErrNoResult by contract.
func Evaluate(f series.Frame, text string) (out series.Series, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = series.Series{}
			err = fmt.Errorf("%w: %v", ErrNoResult, r)
		}
	}()

	root, perr := parse(text)
	if perr != nil {
		return series.Series{}, fmt.Errorf("%w: %v", ErrNoResult, perr)
	}

	v, eerr := eval(f, root)
	if eerr != nil {
		return series.Series{}, fmt.Errorf("%w: %v", ErrNoResult, eerr)
	}

	s, ok := v.(series.Series)
	if !ok {
		return series.Series{}, fmt.Errorf("%w: result is not a series", ErrNoResult)
	}
	if s.Len() != f.Len() {
		return series.Series{}, fmt.Errorf("%w: result length %d != input length %d",
			ErrNoResult, s.Len(), f.Len())
	}
	return s, nil
}
