package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var black = color.NRGBA{A: 255}

func newCanvas(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for p := range img.Pix {
		img.Pix[p] = 255
	}
	return img
}

func changedPixels(img *image.NRGBA) (changed []image.Point) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
				changed = append(changed, image.Pt(x, y))
			}
		}
	}
	return changed
}

func newTestFontManager(t *testing.T) *FontManager {
	fm, err := NewFontManager("")
	require.NoError(t, err)
	return fm
}

func TestFontManagerFamilies(t *testing.T) {
	fm := newTestFontManager(t)

	assert.Contains(t, fm.Families(), "arial")
	assert.Contains(t, fm.Families(), "monospace")
	assert.True(t, fm.HasFamily("Arial"))
	assert.True(t, fm.HasFamily(`"Courier New", monospace`))
	assert.False(t, fm.HasFamily("Comic Sans MS"))
	assert.Same(t, fm.Font(DefaultFamily), fm.Font("Comic Sans MS"))
	assert.Same(t, fm.Font("go mono"), fm.Font("courier"))
}

func TestFontManagerCustomDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Terminal.TTF"), gomono.TTF, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a font"), 0o644))

	fm, err := NewFontManager(dir)
	require.NoError(t, err)
	assert.True(t, fm.HasFamily("terminal"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("garbage"), 0o644))
	_, err = NewFontManager(dir)
	assert.Error(t, err)

	_, err = NewFontManager(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestFaceRejectsInvalidSize(t *testing.T) {
	fm := newTestFontManager(t)

	_, err := fm.Face(DefaultFamily, 0)
	assert.ErrorIs(t, err, ErrInvalidFontSize)

	_, err = fm.Face(DefaultFamily, MaxFontSize+1)
	assert.ErrorIs(t, err, ErrInvalidFontSize)

	_, err = fm.DrawText(newCanvas(1, 1), "W", 0, 0, TextStyle{Size: 100000, Color: black, Opacity: 1})
	assert.ErrorIs(t, err, ErrInvalidFontSize)

	face, err := fm.Face(DefaultFamily, 1)
	require.NoError(t, err)
	assert.NoError(t, face.Close())
}

func TestDrawText(t *testing.T) {
	fm := newTestFontManager(t)
	img := newCanvas(200, 60)

	end, err := fm.DrawText(img, "Hello", 10, 40, TextStyle{Family: "Arial", Size: 24, Color: black, Opacity: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, changedPixels(img))

	width, err := fm.MeasureText("Hello", "Arial", 24)
	require.NoError(t, err)
	assert.InDelta(t, 10+width, fromFixed(end.X), 1.0/64)
	assert.Equal(t, fixed.I(40), end.Y)
}

func TestDrawTextZeroOpacity(t *testing.T) {
	fm := newTestFontManager(t)
	img := newCanvas(200, 60)

	_, err := fm.DrawText(img, "Hello", 10, 40, TextStyle{Size: 24, Color: black, Opacity: 0})
	require.NoError(t, err)
	assert.Empty(t, changedPixels(img))
}

func TestDrawTextOpacityBlends(t *testing.T) {
	fm := newTestFontManager(t)
	opaque, faint := newCanvas(100, 100), newCanvas(100, 100)

	_, err := fm.DrawText(opaque, "H", 10, 80, TextStyle{Size: 80, Color: black, Opacity: 1})
	require.NoError(t, err)
	_, err = fm.DrawText(faint, "H", 10, 80, TextStyle{Size: 80, Color: black, Opacity: 0.1})
	require.NoError(t, err)

	for _, p := range changedPixels(opaque) {
		assert.GreaterOrEqual(t, faint.NRGBAAt(p.X, p.Y).R, opaque.NRGBAAt(p.X, p.Y).R)
	}
	// fully covered pixels are 255 - 0.1*255 rounded, give or take one
	darkest := uint8(255)
	for _, p := range changedPixels(faint) {
		if r := faint.NRGBAAt(p.X, p.Y).R; r < darkest {
			darkest = r
		}
	}
	assert.InDelta(t, 229, int(darkest), 1)
}

func TestDrawSpaced(t *testing.T) {
	fm := newTestFontManager(t)
	style := TextStyle{Size: 8, Color: black, Opacity: 1}
	text := "iiiii"

	unspaced, err := fm.DrawText(newCanvas(200, 20), text, 5, 15, style)
	require.NoError(t, err)

	zero, err := fm.DrawSpaced(newCanvas(200, 20), text, 5, 15, 0, style)
	require.NoError(t, err)
	assert.Equal(t, unspaced, zero)

	spaced, err := fm.DrawSpaced(newCanvas(200, 20), text, 5, 15, 3, style)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int(spaced.X-unspaced.X), int(fixed.I(len(text)*3)))
}

func TestDrawRepeatedRotation(t *testing.T) {
	fm := newTestFontManager(t)
	style := TextStyle{Size: 20, Color: black, Opacity: 1}

	t.Run("zero rotation matches upright text", func(t *testing.T) {
		upright, rotated := newCanvas(120, 40), newCanvas(120, 40)
		_, err := fm.DrawText(upright, "HHHH", 5, 30, style)
		require.NoError(t, err)
		require.NoError(t, fm.DrawRepeated(rotated, "HHHH", []Point{{X: 5, Y: 30}}, 360, style))
		assert.Equal(t, upright.Pix, rotated.Pix)
	})

	t.Run("quarter turn runs downwards", func(t *testing.T) {
		img := newCanvas(100, 200)
		require.NoError(t, fm.DrawRepeated(img, "HHHH", []Point{{X: 50, Y: 20}}, 90, style))

		changed := changedPixels(img)
		require.NotEmpty(t, changed)
		maxY := 0
		for _, p := range changed {
			assert.GreaterOrEqual(t, p.X, 40)
			assert.LessOrEqual(t, p.X, 76)
			assert.GreaterOrEqual(t, p.Y, 17)
			if p.Y > maxY {
				maxY = p.Y
			}
		}
		assert.Greater(t, maxY, 50)
	})
}

func TestDrawRepeated(t *testing.T) {
	fm := newTestFontManager(t)
	style := TextStyle{Size: 12, Color: black, Opacity: 1}

	img := newCanvas(200, 100)
	anchors := []Point{{X: 20, Y: 50}, {X: 120, Y: 50}}
	require.NoError(t, fm.DrawRepeated(img, "HH", anchors, 45, style))

	left, right := 0, 0
	for _, p := range changedPixels(img) {
		if p.X < 100 {
			left++
		} else {
			right++
		}
	}
	assert.Positive(t, left)
	assert.Positive(t, right)

	untouched := newCanvas(50, 50)
	require.NoError(t, fm.DrawRepeated(untouched, "HH", nil, 45, style))
	assert.Empty(t, changedPixels(untouched))
}
