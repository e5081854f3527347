package atlas

import (
	"image"
	"math"
)

type axis int

const (
	axisX axis = iota
	axisY
)

// transparentAlpha is the mean alpha below which a column or row counts as
// part of a transparent gutter.
const transparentAlpha = 10

// estimateGutter returns where the first tile starts (the margin) and the
// width of the gutter between tiles (the spacing) along one axis.
//
// The strongest boundary within one period marks the gutter. A transparent
// run at that boundary is taken as the gutter when both of its sides carry
// at least 60% of the boundary energy; otherwise the gutter is the band
// around the boundary where energy stays above that level.
func estimateGutter(signal []float64, period int, img *image.NRGBA, ax axis) (margin, spacing int) {
	n := len(signal)
	if period <= 0 || n == 0 {
		return 0, 0
	}
	offset := 0
	bestVal := math.Inf(-1)
	for i := range min(period, n) {
		if v := localPeak(signal, i, 2); v > bestVal {
			offset, bestVal = i, v
		}
	}
	// The next copy of the boundary keeps both sides inside the image.
	if offset+period < n {
		offset += period
	}
	peak := -1
	for i := max(0, offset-2); i < min(n, offset+3); i++ {
		if peak < 0 || signal[i] > signal[peak] {
			peak = i
		}
	}
	if signal[peak] <= 0 {
		return 0, 0
	}
	thr := 0.6 * signal[peak]

	// Edge energy at i lies between samples i and i+1, so the gutter may
	// start on either side of the peak.
	for _, idx := range []int{peak + 1, peak} {
		lo, hi, ok := alphaBand(idx, img, ax)
		if !ok || lo == 0 || hi == n-1 {
			continue
		}
		if localPeak(signal, lo-1, 1) >= thr && localPeak(signal, hi, 1) >= thr {
			return (hi + 1) % period, hi - lo + 1
		}
	}

	left, right := peak, peak
	for left > 0 && signal[left-1] >= thr {
		left--
	}
	for right < n-1 && signal[right+1] >= thr {
		right++
	}
	return (right + 1) % period, right - left + 1
}

// alphaBand is the contiguous run [lo, hi] of near-transparent columns
// (axisX) or rows (axisY) through idx. ok is false when idx itself is not
// transparent.
func alphaBand(idx int, img *image.NRGBA, ax axis) (lo, hi int, ok bool) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n, across := w, h
	if ax == axisY {
		n, across = h, w
	}
	meanAlpha := func(i int) float64 {
		var s int
		for j := range across {
			x, y := i, j
			if ax == axisY {
				x, y = j, i
			}
			s += int(img.Pix[pixOffset(img, x, y)+3])
		}
		return float64(s) / float64(across)
	}
	if idx < 0 || idx >= n || meanAlpha(idx) >= transparentAlpha {
		return 0, 0, false
	}
	lo, hi = idx, idx
	for lo > 0 && meanAlpha(lo-1) < transparentAlpha {
		lo--
	}
	for hi < n-1 && meanAlpha(hi+1) < transparentAlpha {
		hi++
	}
	return lo, hi, true
}
