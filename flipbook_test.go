package spritemesh

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flipbookSheet is a 2x2 grid of 32px tiles with tile (1, 0) left empty.
func flipbookSheet() *image.NRGBA {
	sheet := newCanvas(64, 64)
	fillDisc(sheet, 16, 16, 9, opaqueWhite)
	fillRect(sheet, image.Rect(4, 36, 28, 52), opaqueRed)
	fillStar(sheet, 48, 48, 14, 6, 5, opaqueWhite)
	return sheet
}

func TestGenerateFlipbook(t *testing.T) {
	opt := DefaultOptions()
	opt.Slices = image.Pt(2, 2)
	opt.Vertices = 6
	opt.Workers = 2
	fb, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)

	assert.Equal(t, 6, fb.Width)
	assert.Equal(t, 4, fb.Height)
	require.Len(t, fb.PositionTexture, 6*4*4)
	require.Len(t, fb.Frames, 4)

	assert.True(t, fb.Frames[1].Empty())
	assert.Equal(t, image.Pt(1, 0), fb.FrameIndex(1))
	assert.Equal(t, image.Pt(0, 1), fb.FrameIndex(2))
	for _, v := range fb.PositionTexture[6*4 : 2*6*4] {
		assert.Zero(t, v)
	}

	require.NotNil(t, fb.Template)
	assert.Nil(t, fb.Template.UV)
	assert.NotEmpty(t, fb.Template.Index)
	assert.Len(t, fb.Template.Positions, 3*6)
	for _, v := range fb.Template.Positions {
		assert.Zero(t, v)
	}

	for i, m := range fb.Frames {
		if m.Empty() {
			continue
		}
		assert.Equal(t, m.Positions, fb.FramePositions(i), "frame %d", i)
		assert.InDeltaSlice(t, m.UV, fb.FrameUV(i), 1e-6, "frame %d", i)
		for v := range fb.Width {
			assert.Equal(t, float32(1), fb.PositionTexture[(i*fb.Width+v)*4+3])
		}
	}

	assert.Equal(t, 1.0, fb.Stats.Max)
	assert.Less(t, fb.Stats.Min, 1.0)
	assert.Greater(t, fb.Stats.Avg, fb.Stats.Min)
	assert.Less(t, fb.Stats.Avg, fb.Stats.Max)
}

func TestGenerateFlipbookWorkerCountInvariant(t *testing.T) {
	opt := DefaultOptions()
	opt.Slices = image.Pt(2, 2)
	opt.Vertices = 5

	opt.Workers = 1
	serial, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)
	opt.Workers = 4
	parallel, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("worker count changed the flipbook (-serial +parallel):\n%s", diff)
	}
}

func TestGenerateFlipbookSeededTrianglesInParallel(t *testing.T) {
	sheet := newCanvas(128, 128)
	for i := range 16 {
		cx, cy := float64(i%4*32+16), float64(i/4*32+16)
		if i%2 == 0 {
			fillDisc(sheet, cx, cy, float64(5+i/2), opaqueWhite)
		} else {
			fillStar(sheet, cx, cy, 14, float64(3+i/4), 5, opaqueRed)
		}
	}

	opt := DefaultOptions()
	opt.Slices = image.Pt(4, 4)
	opt.Vertices = 3
	opt.Seed = 42

	opt.Workers = 1
	serial, err := GenerateFlipbook(sheet, opt)
	require.NoError(t, err)
	opt.Workers = 8
	parallel, err := GenerateFlipbook(sheet, opt)
	require.NoError(t, err)

	require.Len(t, parallel.Frames, 16)
	for i, m := range parallel.Frames {
		assert.Equal(t, 3, m.VertexCount(), "frame %d", i)
	}
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("seeded frames differ across workers (-serial +parallel):\n%s", diff)
	}
}

func TestFlipbookFrameOutOfRange(t *testing.T) {
	opt := DefaultOptions()
	opt.Slices = image.Pt(2, 2)
	fb, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)

	for _, i := range []int{-1, fb.Height, fb.Height + 3} {
		assert.Nil(t, fb.FramePositions(i), "frame %d", i)
		assert.Nil(t, fb.FrameUV(i), "frame %d", i)
	}
	assert.Len(t, fb.FramePositions(fb.Height-1), 3*fb.Width)
}

func TestGenerateFlipbookIgnoresIndexAndAccumulate(t *testing.T) {
	opt := DefaultOptions()
	opt.Slices = image.Pt(2, 2)
	want, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)

	opt.Index = image.Pt(5, 5)
	opt.Accumulate = true
	got, err := GenerateFlipbook(flipbookSheet(), opt)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))
}

func TestGenerateFlipbookErrors(t *testing.T) {
	opt := DefaultOptions()
	opt.Slices = image.Pt(2, 2)
	_, err := GenerateFlipbook(newCanvas(64, 64), opt)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	opt.Slices = image.Pt(0, 2)
	_, err = GenerateFlipbook(flipbookSheet(), opt)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	opt.Slices = image.Pt(128, 1)
	_, err = GenerateFlipbook(flipbookSheet(), opt)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
