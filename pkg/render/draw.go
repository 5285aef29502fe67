package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// TextStyle describes how text is drawn. Size is in pixels and Opacity in
// [0,1] is applied on top of the color's own alpha.
type TextStyle struct {
	Family  string
	Size    float64
	Color   color.NRGBA
	Opacity float64
}

func (s TextStyle) source() *image.Uniform {
	c := s.Color
	c.A = uint8(math.Round(float64(c.A) * clampUnit(s.Opacity)))
	return image.NewUniform(c)
}

// DrawText draws text with its baseline starting at (x, y) and composites it
// over dst. It returns the pen position after the last glyph.
func (fm *FontManager) DrawText(dst draw.Image, text string, x, y float64, style TextStyle) (fixed.Point26_6, error) {
	face, err := fm.Face(style.Family, style.Size)
	if err != nil {
		return fixed.Point26_6{}, err
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  style.source(),
		Face: face,
		Dot:  point(x, y),
	}
	drawer.DrawString(text)
	return drawer.Dot, nil
}

// DrawSpaced draws text one character at a time, advancing the pen by each
// glyph's measured width plus spacing pixels. A zero spacing draws the string
// as a single unit, kerning included.
func (fm *FontManager) DrawSpaced(dst draw.Image, text string, x, y, spacing float64, style TextStyle) (fixed.Point26_6, error) {
	if spacing == 0 {
		return fm.DrawText(dst, text, x, y, style)
	}

	face, err := fm.Face(style.Family, style.Size)
	if err != nil {
		return fixed.Point26_6{}, err
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  style.source(),
		Face: face,
		Dot:  point(x, y),
	}
	advance := toFixed(spacing)
	for _, r := range text {
		glyph := string(r)
		start := drawer.Dot.X
		drawer.DrawString(glyph)
		drawer.Dot.X = start + font.MeasureString(face, glyph) + advance
	}
	return drawer.Dot, nil
}

// MeasureText returns the advance width of text in pixels.
func (fm *FontManager) MeasureText(text, family string, size float64) (float64, error) {
	face, err := fm.Face(family, size)
	if err != nil {
		return 0, err
	}
	defer face.Close()

	return fromFixed(font.MeasureString(face, text)), nil
}

// Point is a position on a bitmap in pixels.
type Point struct {
	X, Y float64
}

// DrawRepeated draws text once per anchor, each copy rotated by degrees,
// clockwise, about its own baseline origin. Rotated text is rasterized upright into a scratch
// tile once and then resampled onto dst at every anchor.
func (fm *FontManager) DrawRepeated(dst draw.Image, text string, anchors []Point, degrees float64, style TextStyle) error {
	face, err := fm.Face(style.Family, style.Size)
	if err != nil {
		return err
	}
	defer face.Close()

	src := style.source()
	if math.Mod(degrees, 360) == 0 {
		for _, anchor := range anchors {
			drawer := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: point(anchor.X, anchor.Y)}
			drawer.DrawString(text)
		}
		return nil
	}

	metrics := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	if width <= 0 {
		return nil
	}

	const pad = 1
	tile := image.NewNRGBA(image.Rect(0, 0, width+2*pad, ascent+descent+2*pad))
	originX, originY := float64(pad), float64(pad+ascent)

	drawer := &font.Drawer{Dst: tile, Src: src, Face: face, Dot: point(originX, originY)}
	drawer.DrawString(text)

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	for _, anchor := range anchors {
		// Maps tile coordinates to dst so that the baseline origin lands on the anchor.
		tileToDst := f64.Aff3{
			cos, -sin, anchor.X - (cos*originX - sin*originY),
			sin, cos, anchor.Y - (sin*originX + cos*originY),
		}
		draw.ApproxBiLinear.Transform(dst, tileToDst, tile, tile.Bounds(), draw.Over, nil)
	}
	return nil
}

func point(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
