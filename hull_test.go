package spritemesh

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryPoints(t *testing.T) {
	alpha := DefaultOptions().Policy

	t.Run("solid square keeps its ring", func(t *testing.T) {
		img := newCanvas(4, 4)
		fillRect(img, img.Rect, opaqueWhite)
		pts := BoundaryPoints(img, alpha)
		assert.Len(t, pts, 12)
		assert.NotContains(t, pts, Point{1, 1})
		assert.NotContains(t, pts, Point{2, 2})
	})

	t.Run("empty tile", func(t *testing.T) {
		assert.Empty(t, BoundaryPoints(newCanvas(8, 8), alpha))
	})

	t.Run("single pixel", func(t *testing.T) {
		img := newCanvas(8, 8)
		img.SetNRGBA(3, 5, opaqueWhite)
		assert.Equal(t, []Point{{3, 5}}, BoundaryPoints(img, alpha))
	})

	t.Run("interior pixels dropped", func(t *testing.T) {
		img := newCanvas(32, 32)
		fillDisc(img, 16, 16, 10, opaqueWhite)
		pts := BoundaryPoints(img, alpha)
		require.NotEmpty(t, pts)
		assert.NotContains(t, pts, Point{16, 16})
		for _, p := range pts {
			x, y := int(p.X), int(p.Y)
			interior := img.NRGBAAt(x-1, y).A > 0 && img.NRGBAAt(x+1, y).A > 0 &&
				img.NRGBAAt(x, y-1).A > 0 && img.NRGBAAt(x, y+1).A > 0
			assert.False(t, interior, "interior pixel %v emitted", p)
		}
	})

	t.Run("offset bounds are zero origin", func(t *testing.T) {
		img := newCanvas(16, 16)
		fillRect(img, image.Rect(8, 8, 10, 10), opaqueWhite)
		sub := img.SubImage(image.Rect(8, 8, 16, 16)).(*image.NRGBA)
		assert.ElementsMatch(t, []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, BoundaryPoints(sub, alpha))
	})
}

func TestConvexHull(t *testing.T) {
	t.Run("degenerate inputs", func(t *testing.T) {
		assert.Empty(t, ConvexHull(nil))
		assert.Equal(t, []Point{{1, 2}}, ConvexHull([]Point{{1, 2}}))
		assert.Equal(t, []Point{{1, 2}}, ConvexHull([]Point{{1, 2}, {1, 2}}))
		assert.Equal(t, []Point{{0, 0}, {3, 1}}, ConvexHull([]Point{{3, 1}, {0, 0}}))
	})

	t.Run("collinear keeps extremes", func(t *testing.T) {
		got := ConvexHull([]Point{{2, 2}, {0, 0}, {1, 1}, {3, 3}})
		assert.Equal(t, []Point{{0, 0}, {3, 3}}, got)
	})

	t.Run("square with interior, duplicate and edge points", func(t *testing.T) {
		pts := []Point{{0, 0}, {2, 0}, {4, 0}, {4, 4}, {0, 4}, {2, 2}, {1, 3}, {4, 4}, {0, 2}}
		got := ConvexHull(pts)
		assert.Equal(t, []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, got)
		assert.Greater(t, signedArea(got), 0.0)
	})

	t.Run("does not modify input", func(t *testing.T) {
		pts := []Point{{3, 0}, {0, 0}, {1, 1}, {0, 3}}
		ConvexHull(pts)
		assert.Equal(t, []Point{{3, 0}, {0, 0}, {1, 1}, {0, 3}}, pts)
	})

	t.Run("disc hull is convex and encloses every pixel", func(t *testing.T) {
		img := newCanvas(64, 64)
		fillDisc(img, 30, 33, 20, opaqueWhite)
		boundary := BoundaryPoints(img, DefaultOptions().Policy)
		hull := ConvexHull(boundary)
		require.GreaterOrEqual(t, len(hull), 8)
		assert.Greater(t, signedArea(hull), 0.0)
		requireConvex(t, hull)
		for _, p := range boundary {
			requireConvexContains(t, hull, p, 1e-9)
		}
		for i := range hull {
			a, b, c := hull[i], hull[(i+1)%len(hull)], hull[(i+2)%len(hull)]
			assert.NotZero(t, cross(a, b, c), "collinear hull vertices %v %v %v", a, b, c)
		}
	})
}
