package spritemesh

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// AreaReduction returns 1 - (area(polygon) / tileArea) * scale. Negative
// values mean the polygon covers more than the full tile quad, which is
// normal for triangles fitted around wide silhouettes.
func AreaReduction(polygon []Point, tileSize image.Point, scale float64) (float64, error) {
	tileArea := float64(tileSize.X) * float64(tileSize.Y)
	if tileSize.X <= 0 || tileSize.Y <= 0 || tileArea == 0 {
		return 0, fmt.Errorf("%w: tile %v", ErrZeroArea, tileSize)
	}
	return 1 - PolygonArea(polygon)/tileArea*scale, nil
}

// ReductionStats summarizes AreaReduction over the frames of a flipbook.
type ReductionStats struct {
	Avg, Min, Max float64
}

func reductionStats(values []float64) ReductionStats {
	if len(values) == 0 {
		return ReductionStats{Avg: math.NaN(), Min: math.NaN(), Max: math.NaN()}
	}
	return ReductionStats{
		Avg: stat.Mean(values, nil),
		Min: floats.Min(values),
		Max: floats.Max(values),
	}
}
