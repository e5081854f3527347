package spritemesh

import (
	"fmt"
	"math"
)

// earEps is the smallest |cross| accepted as a real turn in normalized space.
const earEps = 1e-12

// Triangulate ear-clips a simple polygon given as flat [x0, y0, x1, y1, ...]
// coordinates and returns a triangle list indexing its vertices. Either
// winding is accepted; every emitted triangle winds counter-clockwise in a
// y-up frame. Holes are not supported.
//
// Collinear vertices are dropped without emitting a triangle, so they stay
// in the vertex buffer but are not referenced. A polygon with no area
// returns ErrDegenerateGeometry.
func Triangulate(coords []float64) ([]uint32, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("%w: odd coordinate count %d", ErrDegenerateGeometry, len(coords))
	}
	n := len(coords) / 2
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerateGeometry, n)
	}
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{coords[2*i], coords[2*i+1]}
	}
	area := signedArea(pts)
	if math.Abs(area) <= earEps || math.IsNaN(area) {
		return nil, fmt.Errorf("%w: zero-area polygon", ErrDegenerateGeometry)
	}

	// Work on a counter-clockwise ring of indices.
	ring := make([]int, n)
	for i := range ring {
		if area > 0 {
			ring[i] = i
		} else {
			ring[i] = n - 1 - i
		}
	}

	index := make([]uint32, 0, 3*(n-2))
	for len(ring) > 3 {
		clipped := false
		for i := range ring {
			prev, cur, next := ring[(i-1+len(ring))%len(ring)], ring[i], ring[(i+1)%len(ring)]
			if !isEar(pts, ring, prev, cur, next) {
				continue
			}
			index = append(index, uint32(prev), uint32(cur), uint32(next))
			ring = append(ring[:i], ring[i+1:]...)
			clipped = true
			break
		}
		if clipped {
			continue
		}
		// No ear: drop a collinear vertex if there is one.
		dropped := false
		for i := range ring {
			prev, cur, next := ring[(i-1+len(ring))%len(ring)], ring[i], ring[(i+1)%len(ring)]
			if math.Abs(cross(pts[prev], pts[cur], pts[next])) <= earEps {
				ring = append(ring[:i], ring[i+1:]...)
				dropped = true
				break
			}
		}
		if !dropped {
			return nil, fmt.Errorf("%w: polygon is not simple", ErrDegenerateGeometry)
		}
	}
	if cross(pts[ring[0]], pts[ring[1]], pts[ring[2]]) > earEps {
		index = append(index, uint32(ring[0]), uint32(ring[1]), uint32(ring[2]))
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("%w: no triangles", ErrDegenerateGeometry)
	}
	return index, nil
}

func isEar(pts []Point, ring []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if cross(a, b, c) <= earEps {
		return false
	}
	for _, k := range ring {
		if k == prev || k == cur || k == next {
			continue
		}
		if pointInTriangle(pts[k], a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle reports whether p lies inside or on the counter-clockwise
// triangle abc.
func pointInTriangle(p, a, b, c Point) bool {
	return cross(a, b, p) >= 0 && cross(b, c, p) >= 0 && cross(c, a, p) >= 0
}
