package spritemesh

import "math"

// Point is a 2D coordinate, either in tile pixel space (y down) or in the
// normalized [-0.5, 0.5] local space of a Mesh (y up).
type Point struct {
	X, Y float64
}

func (a Point) Sub(b Point) Point { return Point{a.X - b.X, a.Y - b.Y} }

func (a Point) Add(b Point) Point { return Point{a.X + b.X, a.Y + b.Y} }

func (a Point) Scale(s float64) Point { return Point{a.X * s, a.Y * s} }

// Dist returns the Euclidean distance between a and b.
func (a Point) Dist(b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// cross is the z component of (a-o) x (b-o). Positive when o, a, b turn
// counter-clockwise in a y-up frame.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func cross2(u, v Point) float64 {
	return u.X*v.Y - u.Y*v.X
}

// signedArea is the shoelace sum; positive for counter-clockwise order.
func signedArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var s float64
	for i := range n {
		a, b := poly[i], poly[(i+1)%n]
		s += a.X*b.Y - b.X*a.Y
	}
	return s / 2
}

// PolygonArea returns the unsigned shoelace area of a simple polygon.
func PolygonArea(poly []Point) float64 {
	return math.Abs(signedArea(poly))
}

// Circle is a disc in pixel space.
type Circle struct {
	Center Point
	Radius float64
}

// containsEps absorbs rounding in the circle constructions; coordinates are
// pixel indices so absolute error grows with image size.
const containsEps = 1e-7

// Contains reports whether p lies inside or on c.
func (c Circle) Contains(p Point) bool {
	return c.Center.Dist(p) <= c.Radius+containsEps*math.Max(1, c.Radius)
}
