package atlas

import (
	"image"

	"gonum.org/v1/gonum/floats"

	"github.com/setanarut/spritemesh"
)

// EdgeEnergy returns the column and row edge-energy projections of src,
// each normalized to [0,1] by its maximum. cols[x] sums the difference
// between columns x and x+1 over all rows; rows[y] likewise for rows y and
// y+1. The last entry of each has no neighbour and stays zero.
func EdgeEnergy(src spritemesh.PixelSource) (cols, rows []float64) {
	return edgeEnergy(toNRGBA(src))
}

func edgeEnergy(img *image.NRGBA) (cols, rows []float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	cols = make([]float64, w)
	rows = make([]float64, h)
	for y := range h {
		for x := range w {
			i := pixOffset(img, x, y)
			if x+1 < w {
				cols[x] += pixelDiff(img.Pix, i, i+4)
			}
			if y+1 < h {
				rows[y] += pixelDiff(img.Pix, i, i+img.Stride)
			}
		}
	}
	normalizeInPlace(cols)
	normalizeInPlace(rows)
	return cols, rows
}

// pixOffset is the Pix index of zero-origin pixel (x, y).
func pixOffset(img *image.NRGBA, x, y int) int {
	return y*img.Stride + x*4
}

// pixelDiff averages the absolute per-channel difference of two NRGBA
// samples, alpha included.
func pixelDiff(pix []uint8, i, j int) float64 {
	var s int
	for c := range 4 {
		d := int(pix[j+c]) - int(pix[i+c])
		if d < 0 {
			d = -d
		}
		s += d
	}
	return float64(s) / 4
}

func normalizeInPlace(s []float64) {
	if len(s) == 0 {
		return
	}
	if m := floats.Max(s); m > 0 {
		floats.Scale(1/m, s)
	}
}
