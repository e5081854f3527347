// Package atlas infers the tile grid of a sprite sheet from its pixels
// alone. Tile boundaries show up as periodic peaks in edge energy, so the
// period of each axis is found by autocorrelating its energy projection.
package atlas

import (
	"image"
	"log/slog"
	"math"

	"github.com/setanarut/spritemesh"
)

// Options bound the period search. Zero fields take the DefaultOptions value.
type Options struct {
	// Smallest tile edge considered, in pixels.
	MinTile int
	// Largest tile edge considered, in pixels.
	MaxTile int
	// Lags below this are never picked; they follow pixel-level texture
	// rather than tile layout.
	IgnoreSmallLags int
	// Also estimate the leading margin and the gutter between tiles.
	DetectGutters bool
}

func DefaultOptions() Options {
	return Options{
		MinTile:         8,
		MaxTile:         512,
		IgnoreSmallLags: 3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinTile <= 0 {
		o.MinTile = d.MinTile
	}
	if o.MaxTile <= 0 {
		o.MaxTile = d.MaxTile
	}
	if o.IgnoreSmallLags <= 0 {
		o.IgnoreSmallLags = d.IgnoreSmallLags
	}
	return o
}

// Guess is a best-effort grid estimate. Margin and spacing are zero unless
// gutters were requested.
type Guess struct {
	TileWidth, TileHeight int
	MarginX, MarginY      int
	SpacingX, SpacingY    int
	// Confidence in [0,1]; below ~0.5 the image is probably not a grid.
	Confidence float64
}

// DefaultConfidence is the threshold below which a guess should not be
// trusted.
const DefaultConfidence = 0.5

// Slices converts g into a (columns, rows) grid for an image of the given
// size. Guesses under threshold, or with no usable tile size, yield a single
// 1x1 tile.
func (g Guess) Slices(size image.Point, threshold float64) image.Point {
	if g.Confidence < threshold || g.TileWidth <= 0 || g.TileHeight <= 0 {
		return image.Pt(1, 1)
	}
	cols := int(math.Round(float64(size.X) / float64(g.TileWidth)))
	rows := int(math.Round(float64(size.Y) / float64(g.TileHeight)))
	return image.Pt(max(1, cols), max(1, rows))
}

// GuessGrid estimates tile size, confidence and, with o.DetectGutters,
// margins and spacing. It never fails; an image without a grid comes back
// with a low confidence.
func GuessGrid(src spritemesh.PixelSource, o Options) Guess {
	o = o.withDefaults()
	img := toNRGBA(src)
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return Guess{}
	}
	colEnergy, rowEnergy := edgeEnergy(img)

	g := Guess{
		TileWidth:  detectPeriod(colEnergy, w, o),
		TileHeight: detectPeriod(rowEnergy, h, o),
	}
	cw := periodConfidence(colEnergy, g.TileWidth)
	ch := periodConfidence(rowEnergy, g.TileHeight)
	g.Confidence = clamp01(0.5 * (cw + ch))

	if o.DetectGutters {
		g.MarginX, g.SpacingX = estimateGutter(colEnergy, g.TileWidth, img, axisX)
		g.MarginY, g.SpacingY = estimateGutter(rowEnergy, g.TileHeight, img, axisY)
	}

	spritemesh.Logger().Debug("atlas grid guessed",
		slog.Int("tile_width", g.TileWidth),
		slog.Int("tile_height", g.TileHeight),
		slog.Float64("confidence_x", cw),
		slog.Float64("confidence_y", ch))
	return g
}

// GuessTileSize is GuessGrid without gutter estimation.
func GuessTileSize(src spritemesh.PixelSource, o Options) (tileWidth, tileHeight int, confidence float64) {
	o.DetectGutters = false
	g := GuessGrid(src, o)
	return g.TileWidth, g.TileHeight, g.Confidence
}

// detectPeriod picks the autocorrelation period, falling back to a scan of
// exact divisors of dim.
func detectPeriod(energy []float64, dim int, o Options) int {
	if p, ok := pickPeriod(energy, dim, o); ok {
		return p
	}
	return scanDivisors(energy, dim, o.MinTile, o.MaxTile)
}

func toNRGBA(src spritemesh.PixelSource) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok {
		return img
	}
	b := src.Bounds()
	img := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, src.NRGBAAt(x, y))
		}
	}
	return img
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
