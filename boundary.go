package spritemesh

// BoundaryPoints returns the foreground pixels of tile that touch the
// background through one of their 4-connected neighbours. Pixels outside the
// tile count as background, so foreground on the tile edge is always kept.
// Interior pixels cannot be hull vertices and are skipped, which keeps the
// point count proportional to the silhouette perimeter.
//
// Points are emitted in row-major order with zero-origin coordinates.
func BoundaryPoints(tile PixelSource, p Policy) []Point {
	b := tile.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	isFG := p.Classifier()

	// Classify every pixel once; neighbour checks read the mask.
	mask := make([]bool, w*h)
	for y := range h {
		for x := range w {
			mask[y*w+x] = isFG(tile.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	fg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask[y*w+x]
	}

	var points []Point
	for y := range h {
		for x := range w {
			if !mask[y*w+x] {
				continue
			}
			if fg(x-1, y) && fg(x+1, y) && fg(x, y-1) && fg(x, y+1) {
				continue
			}
			points = append(points, Point{float64(x), float64(y)})
		}
	}
	return points
}
