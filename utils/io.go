package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/spritemesh"
)

// ReadImage decodes a PNG, JPEG, GIF, BMP or WebP file.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadSource reads an image into a PixelSource ready for spritemesh and atlas.
func LoadSource(path string) (*image.NRGBA, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return spritemesh.ToNRGBA(img), nil
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveTiles writes tile_00.png, tile_01.png, ... into dir.
func SaveTiles(tiles []*image.NRGBA, dir string) error {
	for i, t := range tiles {
		if err := SaveImage(t, filepath.Join(dir, fmt.Sprintf("tile_%02d.png", i))); err != nil {
			return err
		}
	}
	return nil
}

// SavePalette writes one square swatch per colour, left to right.
func SavePalette(palette []color.RGBA, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		c.A = 255
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return SaveImage(img, filename)
}

// HexColor formats c as #rrggbb.
func HexColor(c color.RGBA) string {
	col, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
	return col.Hex()
}

// ParseHexColor parses #rrggbb into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
