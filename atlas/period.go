package atlas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// tieEps keeps the smaller lag when a harmonic scores the same as the
// fundamental period up to rounding.
const tieEps = 1e-9

// autocorr returns the zero-mean autocorrelation of signal for lags
// 0..maxLag, normalised by the total energy of the signal. Long lags have
// fewer overlapping samples and score lower, so multiples of a period never
// beat the period itself.
func autocorr(signal []float64, maxLag int) []float64 {
	n := len(signal)
	corr := make([]float64, maxLag+1)
	if n == 0 {
		return corr
	}
	corr[0] = 1
	mean := stat.Mean(signal, nil)
	var denom float64
	for _, v := range signal {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return corr
	}
	for lag := 1; lag <= maxLag && lag < n; lag++ {
		var num float64
		for i := 0; i < n-lag; i++ {
			num += (signal[i] - mean) * (signal[i+lag] - mean)
		}
		corr[lag] = num / denom
	}
	return corr
}

// divisorPenalty is 0 when lag tiles dim exactly and grows to 1 as dim/lag
// moves away from an integer.
func divisorPenalty(dim, lag int) float64 {
	tiles := float64(dim) / float64(lag)
	return math.Min(1, math.Abs(tiles-math.Round(tiles)))
}

// pickPeriod returns the lag with the best divisor-weighted autocorrelation,
// snapped to dim/round(dim/lag) when that is within two pixels.
func pickPeriod(signal []float64, dim int, o Options) (int, bool) {
	maxLag := min(dim-1, dim/2)
	if maxLag < 1 {
		return 0, false
	}
	corr := autocorr(signal, maxLag)

	best := 0
	bestScore := math.Inf(-1)
	for lag := max(o.IgnoreSmallLags, o.MinTile); lag <= maxLag && lag <= o.MaxTile; lag++ {
		score := corr[lag] - 0.1*divisorPenalty(dim, lag)
		if score > bestScore+tieEps {
			best, bestScore = lag, score
		}
	}
	if best == 0 {
		return 0, false
	}

	if q := int(math.Round(float64(dim) / float64(best))); q >= 2 {
		snapped := int(math.Round(float64(dim) / float64(q)))
		if abs(snapped-best) <= 2 {
			best = snapped
		}
	}
	return best, true
}

// scanDivisors scores every exact divisor of dim giving at least two tiles
// by how well its multiples line up with energy peaks. Without any such
// divisor it guesses a quarter of dim, clamped to the tile range.
func scanDivisors(signal []float64, dim, minTile, maxTile int) int {
	best := 0
	bestScore := math.Inf(-1)
	for s := max(1, minTile); s <= maxTile; s++ {
		if dim%s != 0 || dim/s < 2 {
			continue
		}
		if score := boundaryAlignment(signal, s); score > bestScore {
			best, bestScore = s, score
		}
	}
	if best == 0 {
		return clampInt(dim/4, minTile, maxTile)
	}
	return best
}

// boundaryAlignment averages the strongest energy within ±2 samples of
// every multiple of period.
func boundaryAlignment(signal []float64, period int) float64 {
	n := len(signal)
	var total float64
	var count int
	for idx := period; idx < n; idx += period {
		total += localPeak(signal, idx, 2)
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func localPeak(signal []float64, i, halfWin int) float64 {
	m := math.Inf(-1)
	for d := -halfWin; d <= halfWin; d++ {
		m = math.Max(m, signal[clampInt(i+d, 0, len(signal)-1)])
	}
	return m
}

// periodConfidence combines the autocorrelation at period and its first two
// harmonics into [0,1]. Each lag is rescaled by its overlap, but by no more
// than a factor of two, so a period seen only twice cannot reach full
// confidence. A period that does not tile the signal is discounted by its
// divisor penalty.
func periodConfidence(signal []float64, period int) float64 {
	n := len(signal)
	if period <= 0 || n < 2 {
		return 0
	}
	ac := autocorr(signal, min(n-1, period*3))
	at := func(lag int) float64 {
		if lag >= len(ac) {
			return 0
		}
		return ac[lag] * float64(n) / math.Max(float64(n-lag), float64(n)/2)
	}
	c := clamp01((at(period) + 0.6*at(2*period) + 0.4*at(3*period)) / 2)
	return c * (1 - divisorPenalty(n, period))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
