// Package spritemesh replaces full-quad sprite billboards with small convex
// meshes that tightly bound each sprite's visible silhouette, cutting
// fragment overdraw in particle and sprite heavy scenes.
//
// A tile is classified into foreground pixels, reduced to its boundary,
// wrapped in a convex hull, simplified to a fixed vertex budget and
// ear-clipped into triangles with UVs pointing back into the atlas.
package spritemesh

import (
	"errors"
	"image"
	"log/slog"
)

// Mesh is the geometry generated for one tile. It is never mutated after
// Generate returns.
type Mesh struct {
	// Intermediate stages in tile pixel space (y down).
	Boundary []Point
	Hull     []Point
	Polygon  []Point

	// Positions holds x, y, z per vertex in [-0.5, 0.5] local space, y up,
	// z = 0. len(Positions) == 3 * len(Polygon).
	Positions []float32
	// Index is a triangle list into Positions.
	Index []uint32
	// UV holds u, v per vertex inside the tile's rectangle of the atlas.
	UV []float32

	AreaReduction float64
	TileSize      image.Point
}

// Empty reports whether the tile had no foreground pixels.
func (m *Mesh) Empty() bool { return len(m.Polygon) == 0 }

// VertexCount is the number of xyz triples in Positions.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount is the number of index triples in Index.
func (m *Mesh) TriangleCount() int { return len(m.Index) / 3 }

// Normals returns a +z normal per vertex.
func (m *Mesh) Normals() []float32 {
	out := make([]float32, len(m.Positions))
	for i := 2; i < len(out); i += 3 {
		out[i] = 1
	}
	return out
}

// Generate runs the full pipeline on one tile of src (or on the union of all
// tiles with o.Accumulate).
//
// A tile without foreground pixels is not an error: the returned Mesh is
// Empty and its AreaReduction is 1. Silhouettes that collapse to a line or
// a point return ErrDegenerateGeometry; configuration problems return
// ErrInvalidConfig.
func Generate(src PixelSource, o Options) (*Mesh, error) {
	tile, err := ExtractTile(src, o)
	if err != nil {
		return nil, err
	}
	size := tile.Bounds().Size()
	log := Logger().With(slog.Any("index", o.Index), slog.Bool("accumulate", o.Accumulate))

	boundary := BoundaryPoints(tile, o.Policy)
	log.Debug("boundary extracted", slog.Int("points", len(boundary)), slog.Any("tile", size))
	if len(boundary) == 0 {
		return &Mesh{AreaReduction: 1, TileSize: size}, nil
	}

	hull := ConvexHull(boundary)
	polygon, err := Simplify(hull, o.Vertices, NewShuffler(o.Seed))
	if err != nil {
		return nil, err
	}
	log.Debug("polygon simplified", slog.Int("hull", len(hull)), slog.Int("vertices", len(polygon)))

	reduction, err := AreaReduction(polygon, size, o.Scale)
	if err != nil {
		return nil, err
	}

	local := normalize(polygon, size)
	index, err := Triangulate(local)
	if err != nil {
		return nil, err
	}

	return &Mesh{
		Boundary:      boundary,
		Hull:          hull,
		Polygon:       polygon,
		Positions:     addZ(local),
		Index:         index,
		UV:            tileUV(local, o.Slices, o.Index),
		AreaReduction: reduction,
		TileSize:      size,
	}, nil
}

// normalize maps tile pixel coordinates to flat [x, y, ...] local space:
// centred on the tile, divided by its size, y flipped to point up.
func normalize(polygon []Point, size image.Point) []float64 {
	w, h := float64(size.X), float64(size.Y)
	out := make([]float64, 0, 2*len(polygon))
	for _, p := range polygon {
		x := (p.X - w/2) / w
		y := (p.Y - h/2) / h
		out = append(out, x, -y)
	}
	return out
}

func addZ(flat []float64) []float32 {
	out := make([]float32, 0, len(flat)/2*3)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, float32(flat[i]), float32(flat[i+1]), 0)
	}
	return out
}

// tileUV maps local positions into the (col, row) cell of a cols x rows
// atlas. Rows count from the top of the image while v grows upwards.
func tileUV(flat []float64, slices, index image.Point) []float32 {
	cols, rows := float64(slices.X), float64(slices.Y)
	col, row := float64(index.X), float64(index.Y)
	out := make([]float32, 0, len(flat))
	for i := 0; i+1 < len(flat); i += 2 {
		u := (flat[i]+0.5)/cols + col/cols
		v := (flat[i+1]+0.5)/rows + 1 - (row+1)/rows
		out = append(out, float32(u), float32(v))
	}
	return out
}

// IsDegenerate reports whether err means the silhouette produced no usable
// geometry, as opposed to a configuration problem.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateGeometry)
}
