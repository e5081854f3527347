package utils

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/setanarut/spritemesh"
	"github.com/setanarut/spritemesh/atlas"
)

var (
	edgeColor = color.RGBA{R: 255, G: 26, B: 125, A: 255}
	quadColor = color.RGBA{R: 255, G: 255, B: 255, A: 31}
)

// DrawMesh renders tile magnified by scale with 20% padding on each side,
// the dashed outline of the original quad, and the mesh edges on top.
// Edges shared by two triangles are dashed.
func DrawMesh(tile image.Image, m *spritemesh.Mesh, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	b := tile.Bounds()
	cw, ch := float64(b.Dx())*scale, float64(b.Dy())*scale
	padX, padY := cw*0.2, ch*0.2
	dc := gg.NewContext(int(cw+2*padX), int(ch+2*padY))

	scaled := image.NewNRGBA(image.Rect(0, 0, int(cw), int(ch)))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), tile, b, draw.Over, nil)
	dc.DrawImage(scaled, int(padX), int(padY))

	toX := func(x float32) float64 { return (float64(x)+0.5)*cw + padX }
	toY := func(y float32) float64 { return (0.5-float64(y))*ch + padY }

	dash := 3 * scale
	dc.SetLineWidth(scale)
	dc.SetColor(quadColor)
	dc.SetDash(dash, dash)
	dc.DrawRectangle(padX, padY, cw, ch)
	dc.Stroke()

	dc.SetColor(edgeColor)
	for _, e := range meshEdges(m.Index) {
		if e.shared {
			dc.SetDash(dash, dash)
		} else {
			dc.SetDash()
		}
		a, c := e.a*3, e.b*3
		dc.DrawLine(toX(m.Positions[a]), toY(m.Positions[a+1]), toX(m.Positions[c]), toY(m.Positions[c+1]))
		dc.Stroke()
	}
	return dc.Image()
}

type edge struct {
	a, b   uint32
	shared bool
}

// meshEdges lists each undirected edge of a triangle list once, in first
// seen order, marking edges used by more than one triangle.
func meshEdges(index []uint32) []edge {
	type key struct{ lo, hi uint32 }
	seen := make(map[key]int)
	var edges []edge
	for t := 0; t+2 < len(index); t += 3 {
		tri := [3]uint32{index[t], index[t+1], index[t+2]}
		for i := range 3 {
			a, b := tri[i], tri[(i+1)%3]
			k := key{min(a, b), max(a, b)}
			if j, ok := seen[k]; ok {
				edges[j].shared = true
				continue
			}
			seen[k] = len(edges)
			edges = append(edges, edge{a: a, b: b})
		}
	}
	return edges
}

// PlotEnergy saves the column and row edge-energy profiles of an atlas with
// the guessed tile size in the title.
func PlotEnergy(cols, rows []float64, g atlas.Guess, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("edge energy: %dx%d tiles, confidence %.2f", g.TileWidth, g.TileHeight, g.Confidence)
	p.X.Label.Text = "pixel"
	p.Y.Label.Text = "energy"

	for _, s := range []struct {
		name   string
		values []float64
		color  color.Color
	}{
		{"columns", cols, color.RGBA{R: 220, G: 50, B: 47, A: 255}},
		{"rows", rows, color.RGBA{R: 38, G: 139, B: 210, A: 255}},
	} {
		pts := make(plotter.XYs, len(s.values))
		for i, v := range s.values {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot %s: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	return p.Save(14*vg.Inch, 5*vg.Inch, filename)
}
