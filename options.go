package spritemesh

import (
	"fmt"
	"image"
	"math"
)

type Options struct {
	// Pixel classification. See Policy.
	Policy Policy
	// Atlas grid as (columns, rows). {1,1} for a plain sprite.
	Slices image.Point
	// Tile to analyze as (column, row), zero based. Must lie inside Slices
	// even when Accumulate is set.
	Index image.Point
	// Composite every tile of the grid into one buffer before extracting the
	// silhouette, so a single polygon bounds all frames of an animation.
	Accumulate bool
	// Vertex budget of the output polygon, >= 3.
	// Ideal start: 6-8. 3 uses the circumscribed-triangle path and often
	// covers more area than the tile itself on wide sprites.
	Vertices int
	// Multiplier applied to the polygon/tile area ratio in AreaReduction.
	Scale float64
	// Seed of the shuffle used by the minimal enclosing circle. Every
	// Generate call, and so every flipbook frame, draws from its own
	// NewShuffler(Seed); equal seeds give identical buffers.
	Seed uint64
	// Concurrent frames in GenerateFlipbook. 0 uses GOMAXPROCS, 1 is serial.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Policy: Policy{
			Metric:    MetricAlpha,
			Threshold: 0.01,
		},
		Slices:   image.Pt(1, 1),
		Vertices: 8,
		Scale:    1,
		Seed:     1,
	}
}

// Validate checks the options independently of any image.
func (o Options) Validate() error {
	if err := o.Policy.validate(); err != nil {
		return err
	}
	if o.Vertices < 3 {
		return fmt.Errorf("%w: vertex count %d < 3", ErrInvalidConfig, o.Vertices)
	}
	if o.Slices.X <= 0 || o.Slices.Y <= 0 {
		return fmt.Errorf("%w: slices %v must be positive", ErrInvalidConfig, o.Slices)
	}
	if !o.Index.In(image.Rectangle{Max: o.Slices}) {
		return fmt.Errorf("%w: tile index %v outside %dx%d grid", ErrInvalidConfig, o.Index, o.Slices.X, o.Slices.Y)
	}
	if math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) || o.Scale <= 0 {
		return fmt.Errorf("%w: scale %v must be positive and finite", ErrInvalidConfig, o.Scale)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfig, o.Workers)
	}
	return nil
}

// TileSize is the pixel size of one grid cell of an image of the given size.
// Remainder columns and rows on the right and bottom edge are not part of
// any tile.
func (o Options) TileSize(imageSize image.Point) (image.Point, error) {
	if o.Slices.X <= 0 || o.Slices.Y <= 0 {
		return image.Point{}, fmt.Errorf("%w: slices %v must be positive", ErrInvalidConfig, o.Slices)
	}
	size := image.Pt(imageSize.X/o.Slices.X, imageSize.Y/o.Slices.Y)
	if size.X <= 0 || size.Y <= 0 {
		return image.Point{}, fmt.Errorf("%w: %v image has empty %dx%d tiles", ErrInvalidConfig, imageSize, o.Slices.X, o.Slices.Y)
	}
	return size, nil
}
