package transform

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"

	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
	"github.com/NotSooShariff/adversarial-vision/pkg/model"
	"github.com/NotSooShariff/adversarial-vision/pkg/render"
	"github.com/NotSooShariff/adversarial-vision/pkg/stego"
)

// Engine parses technique requests and applies them. It holds no per request
// state and is safe for concurrent use.
type Engine struct {
	fonts    *render.FontManager
	validate *validator.Validate
}

func NewEngine(fonts *render.FontManager) *Engine {
	return &Engine{fonts: fonts, validate: newValidator()}
}

// FontFamilies lists the families text can be drawn with.
func (e *Engine) FontFamilies() []string {
	return e.fonts.Families()
}

// MissingFontFamily returns the family config asks for when no registered
// font matches it, in which case the default font is drawn instead.
func (e *Engine) MissingFontFamily(config Config) (string, bool) {
	var family string
	switch c := config.(type) {
	case *LowContrastConfig:
		family = c.FontFamily
	case *LowOpacityConfig:
		family = c.FontFamily
	case *MicroFontConfig:
		family = c.FontFamily
	default:
		return "", false
	}
	if family == "" || e.fonts.HasFamily(family) {
		return "", false
	}
	return family, true
}

// Result is the outcome of one technique. Image is nil for vector techniques,
// whose validated configuration is in Parameters instead.
type Result struct {
	Technique  Technique
	Image      *image.NRGBA
	Parameters any
	Embed      *model.EmbedStats
	Duration   time.Duration
}

type LowContrastParameters struct {
	*LowContrastConfig
	CalculatedTextColor string `json:"calculatedTextColor"`
}

// MicrotextTilingParameters reports the estimated text width the grid was
// spaced with next to the width the font actually draws.
type MicrotextTilingParameters struct {
	*MicrotextTilingConfig
	Columns            int     `json:"columns"`
	Rows               int     `json:"rows"`
	SpacingX           float64 `json:"spacingX"`
	SpacingY           float64 `json:"spacingY"`
	EstimatedTextWidth float64 `json:"estimatedTextWidth"`
	MeasuredTextWidth  float64 `json:"measuredTextWidth"`
}

type SteganographyParameters struct {
	*SteganographyConfig
	TextLength   int `json:"textLength"`
	BitsEmbedded int `json:"bitsEmbedded"`
	CapacityBits int `json:"capacityBits"`
}

// Apply runs config against img. img is never modified; raster techniques
// return a new bitmap.
func (e *Engine) Apply(img image.Image, config Config) (Result, error) {
	start := time.Now()

	var (
		result Result
		err    error
	)
	switch c := config.(type) {
	case *LowContrastConfig:
		result, err = e.lowContrast(img, c)
	case *LowOpacityConfig:
		result, err = e.lowOpacity(img, c)
	case *MicroFontConfig:
		result, err = e.microFont(img, c)
	case *MicrotextTilingConfig:
		result, err = e.microtextTiling(img, c)
	case *SteganographyConfig:
		result, err = e.steganography(img, c)
	case *SVGPathConfig:
		result = Result{Parameters: c}
	default:
		return Result{}, fmt.Errorf("no transform registered for %T", config)
	}
	if err != nil {
		return Result{}, err
	}

	result.Technique = config.Technique()
	result.Duration = time.Since(start)
	return result, nil
}

func (e *Engine) lowContrast(img image.Image, c *LowContrastConfig) (Result, error) {
	out := imaging.Clone(img)

	gray := LowContrastTextColor(probe(out, c.X, c.Y), c.ContrastRatio)
	style := render.TextStyle{
		Family:  c.FontFamily,
		Size:    c.FontSize,
		Color:   color.NRGBA{R: gray, G: gray, B: gray, A: 255},
		Opacity: 1,
	}
	if _, err := e.fonts.DrawText(out, c.Text, c.X, c.Y, style); err != nil {
		return Result{}, err
	}

	return Result{
		Image: out,
		Parameters: LowContrastParameters{
			LowContrastConfig:   c,
			CalculatedTextColor: fmt.Sprintf("rgb(%d, %d, %d)", gray, gray, gray),
		},
	}, nil
}

func (e *Engine) lowOpacity(img image.Image, c *LowOpacityConfig) (Result, error) {
	out := imaging.Clone(img)

	style := render.TextStyle{Family: c.FontFamily, Size: c.FontSize, Color: opaque(c.TextColor), Opacity: c.Opacity}
	if _, err := e.fonts.DrawText(out, c.Text, c.X, c.Y, style); err != nil {
		return Result{}, err
	}
	return Result{Image: out, Parameters: c}, nil
}

func (e *Engine) microFont(img image.Image, c *MicroFontConfig) (Result, error) {
	out := imaging.Clone(img)

	style := render.TextStyle{Family: c.FontFamily, Size: c.FontSize, Color: opaque(c.TextColor), Opacity: c.Opacity}
	if _, err := e.fonts.DrawSpaced(out, c.Text, c.X, c.Y, c.LetterSpacing, style); err != nil {
		return Result{}, err
	}
	return Result{Image: out, Parameters: c}, nil
}

func (e *Engine) microtextTiling(img image.Image, c *MicrotextTilingConfig) (Result, error) {
	out := imaging.Clone(img)

	resolved := *c
	if resolved.TileWidth == 0 {
		resolved.TileWidth = float64(out.Rect.Dx())
	}
	if resolved.TileHeight == 0 {
		resolved.TileHeight = float64(out.Rect.Dy())
	}

	grid := NewTileGrid(resolved.Text, resolved.FontSize, resolved.TileDensity, resolved.TileWidth, resolved.TileHeight)
	style := render.TextStyle{Family: tilingFontFamily, Size: resolved.FontSize, Color: tilingTextColor, Opacity: resolved.Opacity}
	if err := e.fonts.DrawRepeated(out, resolved.Text, grid.Anchors(resolved.FontSize), resolved.Rotation, style); err != nil {
		return Result{}, err
	}
	measuredWidth, err := e.fonts.MeasureText(resolved.Text, tilingFontFamily, resolved.FontSize)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Image: out,
		Parameters: MicrotextTilingParameters{
			MicrotextTilingConfig: &resolved,
			Columns:               grid.Columns,
			Rows:                  grid.Rows,
			SpacingX:              grid.SpacingX,
			SpacingY:              grid.SpacingY,
			EstimatedTextWidth:    grid.EstimatedTextWidth,
			MeasuredTextWidth:     measuredWidth,
		},
	}, nil
}

func (e *Engine) steganography(img image.Image, c *SteganographyConfig) (Result, error) {
	out, stats, err := stego.Embed(img, c.stegoConfig(), c.Text)
	switch {
	case errors.Is(err, stego.ErrUnencodableMessage):
		return Result{}, newValidationError("text", err.Error(), err)
	case errors.Is(err, stego.ErrInvalidConfig):
		return Result{}, newValidationError("", err.Error(), err)
	case err != nil:
		return Result{}, err
	}

	return Result{
		Image: out,
		Embed: &stats,
		Parameters: SteganographyParameters{
			SteganographyConfig: c,
			TextLength:          stats.TextLength,
			BitsEmbedded:        stats.BitsEmbedded,
			CapacityBits:        stats.CapacityBits,
		},
	}, nil
}

// LowContrastTextColor picks the gray level of text meant to sit at roughly
// ratio against background. Light backgrounds get darker text and dark ones
// lighter text. The result approximates the ratio rather than solving for it
// exactly.
func LowContrastTextColor(background contrast.RGB, ratio float64) uint8 {
	backgroundLum := contrast.RelativeLuminance(background)

	var textLum float64
	if backgroundLum > 0.5 {
		textLum = (backgroundLum - (ratio - 1)) / ratio
	} else {
		textLum = backgroundLum*ratio + (ratio - 1)
	}
	return contrast.LuminanceToGray(textLum)
}

// probe reads the color of the pixel under (x, y), clamped to the bitmap.
func probe(img *image.NRGBA, x, y float64) contrast.RGB {
	b := img.Bounds()
	px := min(max(int(x), b.Min.X), b.Max.X-1)
	py := min(max(int(y), b.Min.Y), b.Max.Y-1)
	c := img.NRGBAAt(px, py)
	return contrast.RGB{R: c.R, G: c.G, B: c.B}
}

// opaque parses a validated hex color.
func opaque(hex string) color.NRGBA {
	rgb, _ := contrast.HexToRGB(hex)
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}
