package spritemesh

import (
	"fmt"
	"math"
	"slices"
)

// Simplify turns a convex hull (counter-clockwise, as returned by ConvexHull)
// into a convex polygon of exactly n vertices that contains it.
//
// n == 3 circumscribes the hull's minimal enclosing circle with an
// equilateral triangle. Other budgets merge hull edges greedily (see
// reduceHull) or, when the hull already has fewer than n vertices, split its
// longest edges.
func Simplify(hull []Point, n int, shuffle Shuffler) ([]Point, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: vertex count %d < 3", ErrInvalidConfig, n)
	}
	if len(hull) < 3 {
		return nil, fmt.Errorf("%w: hull has %d points", ErrDegenerateGeometry, len(hull))
	}
	if n == 3 {
		c := MinEnclosingCircle(hull, shuffle)
		if c.Radius <= 0 {
			return nil, fmt.Errorf("%w: enclosing circle has zero radius", ErrDegenerateGeometry)
		}
		return CircumscribedTriangle(c), nil
	}
	switch {
	case len(hull) == n:
		return slices.Clone(hull), nil
	case len(hull) < n:
		return padPolygon(hull, n), nil
	}
	return reduceHull(hull, n)
}

// reduceHull removes one edge per step until n vertices remain. Removing
// edge (b, c) extends its neighbours a→b and d→c until they meet at p, and
// replaces b and c with p; the polygon grows by triangle (b, p, c). The edge
// with the smallest growth is removed each step, so the result stays convex
// and contains the input.
//
// An edge is removable only when its neighbours converge outside it, i.e.
// the exterior angles at b and c sum to less than 180°. A convex polygon
// with five or more vertices always has such an edge, so the loop only
// fails on numerically degenerate input.
func reduceHull(hull []Point, n int) ([]Point, error) {
	poly := slices.Clone(hull)
	for len(poly) > n {
		m := len(poly)
		best := -1
		bestArea := math.Inf(1)
		var bestPoint Point
		for i := range m {
			a := poly[(i-1+m)%m]
			b := poly[i]
			c := poly[(i+1)%m]
			d := poly[(i+2)%m]
			p, ok := extendEdges(a, b, c, d)
			if !ok {
				continue
			}
			if area := math.Abs(cross(b, p, c)) / 2; area < bestArea {
				best, bestArea, bestPoint = i, area, p
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("%w: no removable edge left at %d vertices", ErrDegenerateGeometry, m)
		}
		next := (best + 1) % m
		poly[best] = bestPoint
		poly = slices.Delete(poly, next, next+1)
	}
	return poly, nil
}

// extendEdges intersects ray a→b beyond b with ray d→c beyond c.
func extendEdges(a, b, c, d Point) (Point, bool) {
	u := b.Sub(a)
	v := c.Sub(d)
	den := cross2(u, v)
	if math.Abs(den) < 1e-12 {
		return Point{}, false
	}
	bc := c.Sub(b)
	t := cross2(bc, v) / den
	s := cross2(bc, u) / den
	if t <= 0 || s <= 0 {
		return Point{}, false
	}
	return b.Add(u.Scale(t)), true
}

// padPolygon splits the longest edge at its midpoint until poly has n
// vertices. The inserted vertices are collinear with their edge, so the shape
// and its area do not change.
func padPolygon(hull []Point, n int) []Point {
	poly := slices.Clone(hull)
	for len(poly) < n {
		m := len(poly)
		longest, length := 0, -1.0
		for i := range m {
			if l := poly[i].Dist(poly[(i+1)%m]); l > length {
				longest, length = i, l
			}
		}
		a, b := poly[longest], poly[(longest+1)%m]
		mid := Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
		poly = slices.Insert(poly, longest+1, mid)
	}
	return poly
}
