package spritemesh

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Shuffler permutes n elements through swap, with the signature of
// (*rand.Rand).Shuffle. Tests inject their own to pin the order.
type Shuffler func(n int, swap func(i, j int))

// NewShuffler returns a Shuffler backed by a PCG source with the given seed.
// Like the *rand.Rand it wraps, it is not safe for concurrent use.
func NewShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Shuffle
}

// MinEnclosingCircle returns the smallest circle containing every point,
// using Welzl's randomized incremental algorithm in its iterative
// move-to-front form: a point outside the current circle is forced onto the
// boundary set, which never exceeds three points. The shuffle only changes
// iteration order and the expected running time; the circle is unique.
//
// A nil shuffle uses NewShuffler(1).
func MinEnclosingCircle(points []Point, shuffle Shuffler) Circle {
	if len(points) == 0 {
		return Circle{}
	}
	if shuffle == nil {
		shuffle = NewShuffler(1)
	}
	pts := slices.Clone(points)
	shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	c := Circle{Center: pts[0]}
	for i := 1; i < len(pts); i++ {
		if c.Contains(pts[i]) {
			continue
		}
		c = Circle{Center: pts[i]}
		for j := 0; j < i; j++ {
			if c.Contains(pts[j]) {
				continue
			}
			c = diameterCircle(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !c.Contains(pts[k]) {
					c = circumcircle(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return c
}

func diameterCircle(a, b Point) Circle {
	return Circle{
		Center: Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2},
		Radius: a.Dist(b) / 2,
	}
}

// collinearEps bounds the determinant below which three points are treated
// as collinear, relative to the squared extent of the triangle.
const collinearEps = 1e-12

// circumcircle returns the circle through a, b and c. The centre u relative
// to a solves
//
//	2(b-a)·u = |b-a|²
//	2(c-a)·u = |c-a|²
//
// For collinear points the system is singular and the circle spanning the
// two farthest points is returned instead.
func circumcircle(a, b, c Point) Circle {
	ab, ac := b.Sub(a), c.Sub(a)
	A := mat.NewDense(2, 2, []float64{
		2 * ab.X, 2 * ab.Y,
		2 * ac.X, 2 * ac.Y,
	})
	extent := math.Max(ab.X*ab.X+ab.Y*ab.Y, ac.X*ac.X+ac.Y*ac.Y)
	if math.Abs(mat.Det(A)) <= collinearEps*math.Max(1, extent) {
		return farthestPairCircle(a, b, c)
	}
	rhs := mat.NewVecDense(2, []float64{
		ab.X*ab.X + ab.Y*ab.Y,
		ac.X*ac.X + ac.Y*ac.Y,
	})
	var u mat.VecDense
	if err := u.SolveVec(A, rhs); err != nil {
		// mat.Condition still carries a solution; only ill-conditioned.
		if _, ok := err.(mat.Condition); !ok {
			return farthestPairCircle(a, b, c)
		}
	}
	center := a.Add(Point{u.AtVec(0), u.AtVec(1)})
	// Largest of the three distances so every defining point is contained
	// despite rounding.
	r := math.Max(center.Dist(a), math.Max(center.Dist(b), center.Dist(c)))
	return Circle{Center: center, Radius: r}
}

func farthestPairCircle(a, b, c Point) Circle {
	best := diameterCircle(a, b)
	if d := diameterCircle(a, c); d.Radius > best.Radius {
		best = d
	}
	if d := diameterCircle(b, c); d.Radius > best.Radius {
		best = d
	}
	return best
}

// CircumscribedTriangle returns the equilateral triangle whose incircle is c,
// with vertices at -90°, 30° and 150° from the centre at distance 2r.
// In tile pixel space (y down) the first vertex points up.
func CircumscribedTriangle(c Circle) []Point {
	tri := make([]Point, 0, 3)
	for _, deg := range [...]float64{-90, 30, 150} {
		rad := deg * math.Pi / 180
		tri = append(tri, c.Center.Add(Point{math.Cos(rad), math.Sin(rad)}.Scale(2*c.Radius)))
	}
	return tri
}
