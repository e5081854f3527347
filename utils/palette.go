package utils

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/spritemesh"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SuggestAlphaColors proposes up to k chroma-key candidates for an opaque
// sprite sheet. Only the outer one-pixel frame of every tile is sampled,
// since a keyed background touches tile edges far more than sprite content
// does. Candidates come back strongest first.
func SuggestAlphaColors(src spritemesh.PixelSource, grid image.Point, k int, method PaletteMethod) []color.RGBA {
	if k <= 0 {
		return nil
	}
	border := tileBorders(src, grid)
	if border == nil {
		return nil
	}
	palette := ExtractPalette(border, k, method)
	out := make([]color.RGBA, 0, len(palette))
	for _, c := range palette {
		r, g, b := c.Clamped().RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}

// tileBorders packs the frame pixels of every tile into a roughly square
// image, repeating samples to fill the last row.
func tileBorders(src spritemesh.PixelSource, grid image.Point) *image.NRGBA {
	b := src.Bounds()
	if grid.X <= 0 || grid.Y <= 0 {
		grid = image.Pt(1, 1)
	}
	tw, th := b.Dx()/grid.X, b.Dy()/grid.Y
	if tw <= 0 || th <= 0 {
		return nil
	}
	var samples []color.NRGBA
	for row := range grid.Y {
		for col := range grid.X {
			x0, y0 := b.Min.X+col*tw, b.Min.Y+row*th
			for y := y0; y < y0+th; y++ {
				for x := x0; x < x0+tw; x++ {
					if x == x0 || y == y0 || x == x0+tw-1 || y == y0+th-1 {
						samples = append(samples, src.NRGBAAt(x, y))
					}
				}
			}
		}
	}
	side := int(math.Ceil(math.Sqrt(float64(len(samples)))))
	img := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := range side * side {
		img.SetNRGBA(i%side, i/side, samples[i%len(samples)])
	}
	return img
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		return nil
	}
	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors seeds with the heaviest candidate, then keeps
// adding the one farthest in Lab from everything selected, weighted towards
// heavy candidates.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))
	maxW := 0.0
	for _, c := range cands {
		maxW = max(maxW, c.Weight)
	}
	if maxW <= 0 {
		maxW = 1
	}

	seed := 0
	for i := range cands {
		if cands[i].Weight > cands[seed].Weight {
			seed = i
		}
	}
	selected := []int{seed}
	used := make([]bool, len(cands))
	used[seed] = true

	for len(selected) < k {
		bestIdx, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			minD := math.MaxFloat64
			for _, s := range selected {
				minD = min(minD, c.Col.DistanceLab(cands[s].Col))
			}
			score := minD * (0.55 + 0.45*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		selected = append(selected, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selected))
	for _, i := range selected {
		out = append(out, cands[i].Col)
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}
	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, min(max(k*4, k+2), len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		spritemesh.Logger().Warn("kmeans returned an empty palette, falling back to dominantcolor")
	}
	return ExtractDominantPalette(img, k)
}
