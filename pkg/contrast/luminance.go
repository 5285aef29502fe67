package contrast

import "math"

const (
	// MinRatio is the contrast of two identical colors.
	MinRatio = 1.0
	// MaxRatio is the contrast of pure black against pure white.
	MaxRatio = 21.0

	linearThreshold = 0.03928
	luminanceOffset = 0.05
)

// RelativeLuminance returns the WCAG 2.1 relative luminance of c, in [0,1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*toLinear(c.R) + 0.7152*toLinear(c.G) + 0.0722*toLinear(c.B)
}

// LuminanceToGray maps a luminance in [0,1] straight onto an 8-bit gray level.
// Out of range values are clamped first.
func LuminanceToGray(l float64) uint8 {
	return clampChannel(clampUnit(l) * 255)
}

// RatioFromLuminance computes (L_max + 0.05) / (L_min + 0.05).
func RatioFromLuminance(l1, l2 float64) float64 {
	lighter, darker := math.Max(l1, l2), math.Min(l1, l2)
	return (lighter + luminanceOffset) / (darker + luminanceOffset)
}

// RatioRGB is the contrast ratio between two parsed colors.
func RatioRGB(a, b RGB) float64 {
	return RatioFromLuminance(RelativeLuminance(a), RelativeLuminance(b))
}

// Ratio returns the WCAG contrast ratio between two hex colors. The result is
// symmetric in its arguments. A malformed color yields 0, so callers have to
// check for a non-positive result.
func Ratio(a, b string) float64 {
	rgbA, okA := HexToRGB(a)
	rgbB, okB := HexToRGB(b)
	if !okA || !okB {
		return 0
	}
	return RatioRGB(rgbA, rgbB)
}

func toLinear(channel uint8) float64 {
	v := float64(channel) / 255
	if v <= linearThreshold {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
