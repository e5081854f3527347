package spritemesh

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// Flipbook is the geometry of every tile of an animated atlas, packed for a
// renderer that looks positions up by (vertex, frame) instead of swapping
// meshes per frame.
type Flipbook struct {
	// Template shares the topology of every frame: Index is valid for all of
	// them, Positions are zeroed and UV is nil because both are resolved per
	// frame from PositionTexture.
	Template *Mesh
	// Frames in row-major tile order: frame i is tile (i % cols, i / cols).
	Frames []*Mesh
	// PositionTexture is a Width x Height RGBA float texture: texel
	// (vertex, frame) holds x, y, z, 1. Frames without geometry stay zero.
	PositionTexture []float32
	Width, Height   int

	Slices image.Point
	Stats  ReductionStats
}

// FrameIndex returns the tile shown by frame i.
func (f *Flipbook) FrameIndex(i int) image.Point {
	return image.Pt(i%f.Slices.X, i/f.Slices.X)
}

// FramePositions returns the x, y, z triples of frame i read back from the
// position texture, or nil when i is not a frame.
func (f *Flipbook) FramePositions(i int) []float32 {
	if i < 0 || i >= f.Height {
		return nil
	}
	row := f.PositionTexture[i*f.Width*4 : (i+1)*f.Width*4]
	out := make([]float32, 0, f.Width*3)
	for v := 0; v < len(row); v += 4 {
		out = append(out, row[v], row[v+1], row[v+2])
	}
	return out
}

// FrameUV computes the UVs of frame i from its texture row, the way a
// flipbook vertex shader would. It is nil when i is not a frame.
func (f *Flipbook) FrameUV(i int) []float32 {
	pos := f.FramePositions(i)
	if pos == nil {
		return nil
	}
	flat := make([]float64, 0, len(pos)/3*2)
	for v := 0; v+2 < len(pos); v += 3 {
		flat = append(flat, float64(pos[v]), float64(pos[v+1]))
	}
	return tileUV(flat, f.Slices, f.FrameIndex(i))
}

// GenerateFlipbook runs Generate on every tile of the o.Slices grid; o.Index
// and o.Accumulate are ignored. Frames are independent and run on up to
// o.Workers goroutines; the result does not depend on the worker count.
//
// Empty and degenerate frames are kept as Empty meshes with AreaReduction 1
// and zero texture rows. The call fails with ErrDegenerateGeometry when no
// frame produced geometry to use as the template.
func GenerateFlipbook(src PixelSource, o Options) (*Flipbook, error) {
	o.Accumulate = false
	o.Index = image.Point{}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil pixel source", ErrInvalidConfig)
	}
	start := time.Now()
	size, err := o.TileSize(src.Bounds().Size())
	if err != nil {
		return nil, err
	}

	total := o.Slices.X * o.Slices.Y
	frames := make([]*Mesh, total)

	workers := o.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range total {
		g.Go(func() error {
			fo := o
			fo.Index = image.Pt(i%o.Slices.X, i/o.Slices.X)
			m, err := Generate(src, fo)
			if IsDegenerate(err) {
				Logger().Warn("flipbook frame has no geometry", slog.Int("frame", i), slog.Any("err", err))
				m, err = &Mesh{AreaReduction: 1, TileSize: size}, nil
			}
			if err != nil {
				return fmt.Errorf("frame %v: %w", fo.Index, err)
			}
			frames[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fb := &Flipbook{
		Frames:          frames,
		PositionTexture: make([]float32, o.Vertices*total*4),
		Width:           o.Vertices,
		Height:          total,
		Slices:          o.Slices,
	}
	reductions := make([]float64, total)
	for i, m := range frames {
		reductions[i] = m.AreaReduction
		if m.VertexCount() != o.Vertices {
			continue
		}
		if fb.Template == nil {
			fb.Template = &Mesh{
				Positions: make([]float32, len(m.Positions)),
				Index:     slices.Clone(m.Index),
				TileSize:  m.TileSize,
			}
		}
		row := fb.PositionTexture[i*o.Vertices*4:]
		for v := range o.Vertices {
			copy(row[v*4:v*4+3], m.Positions[v*3:v*3+3])
			row[v*4+3] = 1
		}
	}
	if fb.Template == nil {
		return nil, fmt.Errorf("%w: no frame of %d produced %d vertices", ErrDegenerateGeometry, total, o.Vertices)
	}
	fb.Stats = reductionStats(reductions)
	Logger().Debug("flipbook generated",
		slog.Int("frames", total),
		slog.Float64("avg_reduction", fb.Stats.Avg),
		slog.Duration("elapsed", time.Since(start)))
	return fb, nil
}
