package spritemesh

import (
	"cmp"
	"slices"
)

// ConvexHull returns the convex hull of points in counter-clockwise order
// (positive signed area), starting from the lexicographically smallest point.
// Duplicates and collinear points are dropped. Inputs of 0, 1 or 2 distinct
// points return those points, which callers treat as degenerate.
//
// Andrew's monotone chain, O(n log n).
func ConvexHull(points []Point) []Point {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	hull := make([]Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// The last point repeats the first.
	hull = hull[:len(hull)-1]
	if len(hull) < 3 {
		// All input points were collinear: keep the two extremes.
		return []Point{pts[0], pts[len(pts)-1]}
	}
	return slices.Clip(hull)
}
