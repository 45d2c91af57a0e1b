package indicator

import (
	"errors"

	"equity-navigator/internal/series"
)

// ErrBetaUnavailable is returned when beta cannot be computed: fewer
// than two paired return observations, or a benchmark with zero return
// variance.
var ErrBetaUnavailable = errors.New("indicator: beta unavailable")

// Beta returns the asset's beta against a benchmark: the covariance of
// their bar-over-bar returns divided by the benchmark return variance.
// Both series must be index-aligned. Points where either return is
// undefined are dropped from the pairing.
func Beta(asset, benchmark series.Series) (float64, error) {
	if asset.Len() != benchmark.Len() {
		return 0, ErrBetaUnavailable
	}
	ar := returns(asset)
	br := returns(benchmark)

	var xs, ys []float64
	for i := 0; i < ar.Len(); i++ {
		if !ar.Defined(i) || !br.Defined(i) {
			continue
		}
		xs = append(xs, br.At(i))
		ys = append(ys, ar.At(i))
	}
	if len(xs) < 2 {
		return 0, ErrBetaUnavailable
	}

	meanX := mean(xs)
	meanY := mean(ys)
	cov, varX := 0.0, 0.0
	for i := range xs {
		dx := xs[i] - meanX
		cov += dx * (ys[i] - meanY)
		varX += dx * dx
	}
	if varX == 0 {
		return 0, ErrBetaUnavailable
	}
	return cov / varX, nil
}

// returns computes bar-over-bar fractional change; index 0 and points
// following a zero or undefined price are undefined.
func returns(s series.Series) series.Series {
	return s.Diff().Div(s.Shift(1))
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
