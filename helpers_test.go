package spritemesh

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	opaqueRed   = color.NRGBA{R: 255, A: 255}
	magenta     = color.NRGBA{R: 255, B: 255, A: 255}
)

func newCanvas(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func fillDisc(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	fillFunc(img, c, func(x, y float64) bool {
		return (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r
	})
}

// fillStar rasterizes a star with the given number of spikes.
func fillStar(img *image.NRGBA, cx, cy, outer, inner float64, spikes int, c color.NRGBA) {
	star := make([]Point, 0, 2*spikes)
	for i := range 2 * spikes {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(spikes) - math.Pi/2
		star = append(star, Point{cx + r*math.Cos(a), cy + r*math.Sin(a)})
	}
	fillFunc(img, c, func(x, y float64) bool { return insidePolygon(star, Point{x, y}) })
}

// fillLetterL draws an upper-case L of stroke width s inside r.
func fillLetterL(img *image.NRGBA, r image.Rectangle, s int, c color.NRGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+s, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-s, r.Max.X, r.Max.Y), c)
}

func fillFunc(img *image.NRGBA, c color.NRGBA, in func(x, y float64) bool) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if in(float64(x), float64(y)) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// insidePolygon is an even-odd crossing test.
func insidePolygon(poly []Point, p Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

// requireConvexContains checks that p lies inside or on the convex polygon
// poly, in either winding.
func requireConvexContains(t *testing.T, poly []Point, p Point, eps float64) {
	t.Helper()
	var pos, neg bool
	for i := range poly {
		c := cross(poly[i], poly[(i+1)%len(poly)], p)
		if c > eps {
			pos = true
		}
		if c < -eps {
			neg = true
		}
	}
	require.False(t, pos && neg, "point %v outside polygon %v", p, poly)
}

// localPolygon reads the x, y pairs of a Mesh's position buffer.
func localPolygon(m *Mesh) []Point {
	out := make([]Point, 0, m.VertexCount())
	for i := 0; i+2 < len(m.Positions); i += 3 {
		out = append(out, Point{float64(m.Positions[i]), float64(m.Positions[i+1])})
	}
	return out
}

// requireMeshContainsSilhouette checks every foreground pixel of tile against
// the mesh in normalized space.
func requireMeshContainsSilhouette(t *testing.T, m *Mesh, tile *image.NRGBA, p Policy) {
	t.Helper()
	poly := localPolygon(m)
	require.GreaterOrEqual(t, len(poly), 3)
	isFG := p.Classifier()
	w, h := float64(tile.Rect.Dx()), float64(tile.Rect.Dy())
	for y := range tile.Rect.Dy() {
		for x := range tile.Rect.Dx() {
			if !isFG(tile.NRGBAAt(x, y)) {
				continue
			}
			local := Point{(float64(x) - w/2) / w, -(float64(y) - h/2) / h}
			requireConvexContains(t, poly, local, 1e-5)
		}
	}
}

func requireConvex(t *testing.T, poly []Point) {
	t.Helper()
	var pos, neg bool
	for i := range poly {
		c := cross(poly[i], poly[(i+1)%len(poly)], poly[(i+2)%len(poly)])
		if c > 1e-9 {
			pos = true
		}
		if c < -1e-9 {
			neg = true
		}
	}
	require.False(t, pos && neg, "polygon %v is not convex", poly)
}
