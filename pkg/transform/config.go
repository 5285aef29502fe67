package transform

import (
	"github.com/NotSooShariff/adversarial-vision/pkg/stego"
)

// Config is the closed set of technique configurations. Raster configs
// produce a new bitmap; VectorConfig is validated and echoed only.
type Config interface {
	Technique() Technique
	Message() string
	config()
}

type LowContrastConfig struct {
	Text          string  `json:"text" validate:"required"`
	ContrastRatio float64 `json:"contrastRatio" validate:"gte=1,lte=21"`
	FontSize      float64 `json:"fontSize" validate:"gt=0,lte=500"`
	FontFamily    string  `json:"fontFamily"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

type LowOpacityConfig struct {
	Text       string  `json:"text" validate:"required"`
	TextColor  string  `json:"textColor" validate:"rgbhex"`
	Opacity    float64 `json:"opacity" validate:"gte=0,lte=1"`
	FontSize   float64 `json:"fontSize" validate:"gt=0,lte=500"`
	FontFamily string  `json:"fontFamily"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

type MicroFontConfig struct {
	Text          string  `json:"text" validate:"required"`
	FontSize      float64 `json:"fontSize" validate:"gte=1,lte=500"`
	FontFamily    string  `json:"fontFamily"`
	TextColor     string  `json:"textColor" validate:"rgbhex"`
	LetterSpacing float64 `json:"letterSpacing"`
	Opacity       float64 `json:"opacity" validate:"gte=0,lte=1"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// SVGPathConfig is handed back to the caller for client side vector
// rendering. No pixels are touched for it.
type SVGPathConfig struct {
	Text            string  `json:"text" validate:"required"`
	FontSize        float64 `json:"fontSize" validate:"gt=0,lte=500"`
	StrokeWidth     float64 `json:"strokeWidth" validate:"gte=0"`
	StrokeColor     string  `json:"strokeColor" validate:"rgbhex"`
	StrokeOpacity   float64 `json:"strokeOpacity" validate:"gte=0,lte=1"`
	FillColor       string  `json:"fillColor" validate:"rgbhex"`
	FillOpacity     float64 `json:"fillOpacity" validate:"gte=0,lte=1"`
	StrokeDasharray string  `json:"strokeDasharray" validate:"dasharray"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
}

// MicrotextTilingConfig leaves TileWidth and TileHeight at zero to cover the
// whole image.
type MicrotextTilingConfig struct {
	Text        string  `json:"text" validate:"required"`
	TileDensity float64 `json:"tileDensity" validate:"gte=5,lte=100"`
	FontSize    float64 `json:"fontSize" validate:"gte=2,lte=12"`
	Opacity     float64 `json:"opacity" validate:"gte=0,lte=1"`
	Rotation    float64 `json:"rotation" validate:"gte=0,lte=360"`
	TileWidth   float64 `json:"tileWidth,omitempty" validate:"gte=0"`
	TileHeight  float64 `json:"tileHeight,omitempty" validate:"gte=0"`
}

type SteganographyConfig struct {
	Text           string `json:"text" validate:"required"`
	BitsPerChannel int    `json:"bitsPerChannel" validate:"gte=1,lte=3"`
	Channels       string `json:"channels" validate:"oneof=rgb r g b rg rb gb"`
}

func (*LowContrastConfig) Technique() Technique     { return LowContrast }
func (*LowOpacityConfig) Technique() Technique      { return LowOpacity }
func (*MicroFontConfig) Technique() Technique       { return MicroFont }
func (*SVGPathConfig) Technique() Technique         { return SVGPath }
func (*MicrotextTilingConfig) Technique() Technique { return MicrotextTiling }
func (*SteganographyConfig) Technique() Technique   { return Steganography }

func (c *LowContrastConfig) Message() string     { return c.Text }
func (c *LowOpacityConfig) Message() string      { return c.Text }
func (c *MicroFontConfig) Message() string       { return c.Text }
func (c *SVGPathConfig) Message() string         { return c.Text }
func (c *MicrotextTilingConfig) Message() string { return c.Text }
func (c *SteganographyConfig) Message() string   { return c.Text }

func (*LowContrastConfig) config()     {}
func (*LowOpacityConfig) config()      {}
func (*MicroFontConfig) config()       {}
func (*SVGPathConfig) config()         {}
func (*MicrotextTilingConfig) config() {}
func (*SteganographyConfig) config()   {}

func (c *SteganographyConfig) stegoConfig() stego.Config {
	return stego.Config{BitsPerChannel: c.BitsPerChannel, Channels: c.Channels}
}

// DefaultConfig returns the configuration of technique with every optional
// field at its default.
func DefaultConfig(technique Technique) (Config, error) {
	switch technique {
	case LowContrast:
		return &LowContrastConfig{
			ContrastRatio: 1.5,
			FontSize:      24,
			FontFamily:    "Arial",
			X:             50,
			Y:             50,
		}, nil
	case LowOpacity:
		return &LowOpacityConfig{
			TextColor:  "#000000",
			Opacity:    0.1,
			FontSize:   24,
			FontFamily: "Arial",
			X:          50,
			Y:          50,
		}, nil
	case MicroFont:
		return &MicroFontConfig{
			FontSize:      4,
			FontFamily:    "Arial",
			TextColor:     "#000000",
			LetterSpacing: 0,
			Opacity:       0.8,
			X:             50,
			Y:             50,
		}, nil
	case SVGPath:
		return &SVGPathConfig{
			FontSize:        24,
			StrokeWidth:     0.5,
			StrokeColor:     "#000000",
			StrokeOpacity:   1.0,
			FillColor:       "#000000",
			FillOpacity:     0.3,
			StrokeDasharray: "",
			X:               50,
			Y:               50,
		}, nil
	case MicrotextTiling:
		return &MicrotextTilingConfig{
			TileDensity: 20,
			FontSize:    6,
			Opacity:     0.5,
			Rotation:    0,
		}, nil
	case Steganography:
		return &SteganographyConfig{
			BitsPerChannel: stego.DefaultBitsPerChannel,
			Channels:       stego.DefaultChannels,
		}, nil
	}
	return nil, unknownTechniqueError(string(technique))
}
