// Package transform embeds text into bitmaps with one of several techniques
// that keep it hard for people to see while machines can still read it.
package transform

type Technique string

const (
	LowContrast     Technique = "low-contrast"
	LowOpacity      Technique = "low-opacity"
	MicroFont       Technique = "micro-font"
	SVGPath         Technique = "svg-path"
	MicrotextTiling Technique = "microtext-tiling"
	Steganography   Technique = "steganography"
)

type Kind string

const (
	// KindRaster techniques return a modified bitmap.
	KindRaster Kind = "raster"
	// KindVector techniques return a validated configuration for the caller
	// to render.
	KindVector Kind = "vector"
)

type ParameterDoc struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Range       string `json:"range,omitempty"`
	Description string `json:"description"`
}

type TechniqueDoc struct {
	Technique   Technique      `json:"technique"`
	Kind        Kind           `json:"kind"`
	Description string         `json:"description"`
	Note        string         `json:"note,omitempty"`
	Parameters  []ParameterDoc `json:"parameters"`
}

var commonParameters = []ParameterDoc{
	{Name: "image", Type: "string (base64)", Required: true, Description: "Base64 encoded image data or data URI"},
	{Name: "text", Type: "string", Required: true, Description: "Text to embed"},
}

func position() []ParameterDoc {
	return []ParameterDoc{
		{Name: "x", Type: "number", Default: 50.0, Description: "X position of the text baseline start"},
		{Name: "y", Type: "number", Default: 50.0, Description: "Y position of the text baseline"},
	}
}

var techniqueDocs = []TechniqueDoc{
	{
		Technique:   LowContrast,
		Kind:        KindRaster,
		Description: "Apply low-contrast text using WCAG contrast ratios",
		Parameters: append([]ParameterDoc{
			{Name: "contrastRatio", Type: "number", Default: 1.5, Range: "1.0 - 21.0", Description: "Target WCAG contrast ratio against the background under the text (lower = less visible)"},
			{Name: "fontSize", Type: "number", Default: 24.0, Range: "> 0, up to 500", Description: "Font size in pixels"},
			{Name: "fontFamily", Type: "string", Default: "Arial", Description: "Font family name"},
		}, position()...),
	},
	{
		Technique:   LowOpacity,
		Kind:        KindRaster,
		Description: "Apply transparent text with configurable opacity",
		Parameters: append([]ParameterDoc{
			{Name: "textColor", Type: "string", Default: "#000000", Description: "Text color in hex format"},
			{Name: "opacity", Type: "number", Default: 0.1, Range: "0.0 - 1.0", Description: "Text opacity"},
			{Name: "fontSize", Type: "number", Default: 24.0, Range: "> 0, up to 500", Description: "Font size in pixels"},
			{Name: "fontFamily", Type: "string", Default: "Arial", Description: "Font family name"},
		}, position()...),
	},
	{
		Technique:   MicroFont,
		Kind:        KindRaster,
		Description: "Apply extremely small text",
		Parameters: append([]ParameterDoc{
			{Name: "fontSize", Type: "number", Default: 4.0, Range: "1 - 500, intended 1 - 10", Description: "Font size in pixels"},
			{Name: "fontFamily", Type: "string", Default: "Arial", Description: "Font family name"},
			{Name: "textColor", Type: "string", Default: "#000000", Description: "Text color in hex format"},
			{Name: "letterSpacing", Type: "number", Default: 0.0, Description: "Extra pixels between characters"},
			{Name: "opacity", Type: "number", Default: 0.8, Range: "0.0 - 1.0", Description: "Text opacity"},
		}, position()...),
	},
	{
		Technique:   SVGPath,
		Kind:        KindVector,
		Description: "Apply SVG path text with stroke and fill properties",
		Note:        "Returns a configuration to render client-side as an SVG overlay, the image is not modified",
		Parameters: append([]ParameterDoc{
			{Name: "fontSize", Type: "number", Default: 24.0, Range: "> 0, up to 500", Description: "Font size in pixels"},
			{Name: "strokeWidth", Type: "number", Default: 0.5, Description: "Stroke width in pixels"},
			{Name: "strokeColor", Type: "string", Default: "#000000", Description: "Stroke color in hex format"},
			{Name: "strokeOpacity", Type: "number", Default: 1.0, Range: "0.0 - 1.0", Description: "Stroke opacity"},
			{Name: "fillColor", Type: "string", Default: "#000000", Description: "Fill color in hex format"},
			{Name: "fillOpacity", Type: "number", Default: 0.3, Range: "0.0 - 1.0", Description: "Fill opacity"},
			{Name: "strokeDasharray", Type: "string", Default: "", Description: `SVG stroke-dasharray value, e.g. "5,5" for dashed`},
		}, position()...),
	},
	{
		Technique:   MicrotextTiling,
		Kind:        KindRaster,
		Description: "Tile small text repeatedly across the image",
		Parameters: []ParameterDoc{
			{Name: "tileDensity", Type: "number", Default: 20.0, Range: "5 - 100", Description: "Approximate number of tiles per dimension"},
			{Name: "fontSize", Type: "number", Default: 6.0, Range: "2 - 12", Description: "Font size in pixels"},
			{Name: "opacity", Type: "number", Default: 0.5, Range: "0.0 - 1.0", Description: "Text opacity"},
			{Name: "rotation", Type: "number", Default: 0.0, Range: "0 - 360", Description: "Clockwise rotation of every tile in degrees"},
			{Name: "tileWidth", Type: "number", Default: "image width", Description: "Width of the tiled area"},
			{Name: "tileHeight", Type: "number", Default: "image height", Description: "Height of the tiled area"},
		},
	},
	{
		Technique:   Steganography,
		Kind:        KindRaster,
		Description: "Embed text in image pixels using the least significant bits",
		Note:        "Characters must be in the 1 - 255 range. Read it back with the steganography extraction endpoint",
		Parameters: []ParameterDoc{
			{Name: "bitsPerChannel", Type: "number", Default: 1, Range: "1 - 3", Description: "Low bits of each selected channel that carry the message"},
			{Name: "channels", Type: "string", Default: "rgb", Range: "rgb, r, g, b, rg, rb, gb", Description: "Color channels that carry the message"},
		},
	},
}

// Techniques lists every supported technique in a stable order.
func Techniques() []Technique {
	techniques := make([]Technique, 0, len(techniqueDocs))
	for _, doc := range techniqueDocs {
		techniques = append(techniques, doc.Technique)
	}
	return techniques
}

func ParseTechnique(name string) (Technique, error) {
	for _, doc := range techniqueDocs {
		if string(doc.Technique) == name {
			return doc.Technique, nil
		}
	}
	return "", unknownTechniqueError(name)
}

// Describe returns the parameter documentation of technique.
func Describe(technique Technique) (TechniqueDoc, error) {
	for _, doc := range techniqueDocs {
		if doc.Technique == technique {
			doc.Parameters = append(append([]ParameterDoc{}, commonParameters...), doc.Parameters...)
			return doc, nil
		}
	}
	return TechniqueDoc{}, unknownTechniqueError(string(technique))
}

func (t Technique) Kind() Kind {
	if t == SVGPath {
		return KindVector
	}
	return KindRaster
}
