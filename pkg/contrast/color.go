// Package contrast implements the WCAG 2.1 relative luminance and contrast ratio
// math used to pick and score low-visibility text colors.
package contrast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Gray returns the RGB triple with all channels set to v.
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// Hex renders the color as a lower case "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToRGB parses a 6 digit hex color with an optional leading '#'. Parsing is
// case-insensitive. The boolean is false for any other shape of input.
func HexToRGB(hex string) (RGB, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGB{}, false
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return RGB{}, false
		}
	}

	r, _ := strconv.ParseUint(hex[0:2], 16, 8)
	g, _ := strconv.ParseUint(hex[2:4], 16, 8)
	b, _ := strconv.ParseUint(hex[4:6], 16, 8)

	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, true
}

// RGBToHex rounds and clamps each component to [0,255] and encodes the result
// as "#rrggbb".
func RGBToHex(r, g, b float64) string {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}.Hex()
}

// InterpolateColor blends two hex colors linearly by factor (0 yields from, 1
// yields to). When either color is malformed from is returned unchanged.
func InterpolateColor(from, to string, factor float64) string {
	a, okA := HexToRGB(from)
	b, okB := HexToRGB(to)
	if !okA || !okB {
		return from
	}

	lerp := func(x, y uint8) float64 {
		return math.Round(float64(x) + (float64(y)-float64(x))*factor)
	}
	return RGBToHex(lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B))
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
