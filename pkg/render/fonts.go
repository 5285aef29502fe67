// Package render draws text onto bitmaps with the Go fonts or custom TrueType
// and OpenType fonts.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	DefaultFamily = "sans-serif"
	// MaxFontSize bounds glyph masks, which opentype allocates at full glyph
	// size whatever the destination bounds are.
	MaxFontSize = 500
	dpi         = 72
)

var ErrInvalidFontSize = errors.New("font size must be greater than 0 and at most 500")

var builtinFonts = map[string][]byte{
	"go":      goregular.TTF,
	"go bold": gobold.TTF,
	"go mono": gomono.TTF,
}

// builtinAliases maps the family names clients usually send to the embedded
// Go fonts. Lookups are case insensitive.
var builtinAliases = map[string]string{
	"sans-serif":      "go",
	"serif":           "go",
	"arial":           "go",
	"helvetica":       "go",
	"times new roman": "go",
	"bold":            "go bold",
	"arial bold":      "go bold",
	"monospace":       "go mono",
	"courier":         "go mono",
	"courier new":     "go mono",
}

// FontManager resolves family names to parsed fonts. It is read-only after
// construction and safe for concurrent use; faces are created per draw call.
type FontManager struct {
	fonts    map[string]*opentype.Font
	fallback *opentype.Font
}

// NewFontManager parses the embedded Go fonts and, when customDir is set, every
// .ttf and .otf file in it. A custom font is registered under its lowercase
// file name without extension and overrides a builtin family of the same name.
func NewFontManager(customDir string) (*FontManager, error) {
	fm := &FontManager{fonts: map[string]*opentype.Font{}}

	for family, data := range builtinFonts {
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse builtin font %q: %w", family, err)
		}
		fm.fonts[family] = parsed
	}
	for alias, family := range builtinAliases {
		fm.fonts[alias] = fm.fonts[family]
	}
	fm.fallback = fm.fonts[DefaultFamily]

	if customDir == "" {
		return fm, nil
	}

	entries, err := os.ReadDir(customDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read font directory: %w", err)
	}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(customDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read font %s: %w", entry.Name(), err)
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", entry.Name(), err)
		}
		fm.fonts[normalizeFamily(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))] = parsed
	}

	return fm, nil
}

// Font returns the font registered for family, or the default sans-serif font.
func (fm *FontManager) Font(family string) *opentype.Font {
	if f, found := fm.fonts[normalizeFamily(family)]; found {
		return f
	}
	return fm.fallback
}

// HasFamily reports whether family resolves to a registered font rather than
// the fallback.
func (fm *FontManager) HasFamily(family string) bool {
	_, found := fm.fonts[normalizeFamily(family)]
	return found
}

// Families lists every registered family name, sorted.
func (fm *FontManager) Families() []string {
	families := make([]string, 0, len(fm.fonts))
	for family := range fm.fonts {
		families = append(families, family)
	}
	sort.Strings(families)
	return families
}

// Face returns a new face of family at size pixels. The caller must close it.
func (fm *FontManager) Face(family string, size float64) (font.Face, error) {
	if size <= 0 || size > MaxFontSize {
		return nil, fmt.Errorf("%w: %g", ErrInvalidFontSize, size)
	}

	face, err := opentype.NewFace(fm.Font(family), &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// normalizeFamily keeps the first entry of a CSS style family list, so
// "Arial, sans-serif" resolves to arial.
func normalizeFamily(family string) string {
	if idx := strings.IndexByte(family, ','); idx >= 0 {
		family = family[:idx]
	}
	return strings.ToLower(strings.Trim(strings.TrimSpace(family), `"'`))
}
