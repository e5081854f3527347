package spritemesh

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelSource is read-only access to decoded, non-premultiplied RGBA samples.
// *image.NRGBA satisfies it. Decoding is the caller's job; see utils.LoadSource.
type PixelSource interface {
	Bounds() image.Rectangle
	NRGBAAt(x, y int) color.NRGBA
}

// ToNRGBA copies img into a zero-origin NRGBA buffer.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// sourceImage adapts a PixelSource that is not already an image.Image.
type sourceImage struct {
	PixelSource
}

func (sourceImage) ColorModel() color.Model { return color.NRGBAModel }

func (s sourceImage) At(x, y int) color.Color { return s.NRGBAAt(x, y) }

func asImage(src PixelSource) image.Image {
	if img, ok := src.(image.Image); ok {
		return img
	}
	return sourceImage{src}
}

// ExtractTile builds the tile-sized buffer the silhouette is read from.
// In single-tile mode it is a copy of tile o.Index; with o.Accumulate every
// tile is drawn over the same buffer, producing the union of all frames.
func ExtractTile(src PixelSource, o Options) (*image.NRGBA, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil pixel source", ErrInvalidConfig)
	}
	bounds := src.Bounds()
	size, err := o.TileSize(bounds.Size())
	if err != nil {
		return nil, err
	}
	img := asImage(src)
	tile := image.NewNRGBA(image.Rectangle{Max: size})
	if !o.Accumulate {
		draw.Draw(tile, tile.Bounds(), img, tileOrigin(bounds, size, o.Index), draw.Src)
		return tile, nil
	}
	for row := range o.Slices.Y {
		for col := range o.Slices.X {
			draw.Draw(tile, tile.Bounds(), img, tileOrigin(bounds, size, image.Pt(col, row)), draw.Over)
		}
	}
	return tile, nil
}

func tileOrigin(bounds image.Rectangle, size, index image.Point) image.Point {
	return bounds.Min.Add(image.Pt(index.X*size.X, index.Y*size.Y))
}
