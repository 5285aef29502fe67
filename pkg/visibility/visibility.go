// Package visibility scores how readable text of a given contrast and size is
// to a human viewer.
package visibility

import (
	"math"

	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
)

const (
	DefaultViewingDistanceCm = 50.0

	largeTextSize     = 18.0
	largeBoldTextSize = 14.0
)

type Level string

const (
	LevelFail Level = "FAIL"
	LevelAA   Level = "AA"
	LevelAAA  Level = "AAA"
)

// WCAGResult reports which WCAG 2.1 contrast levels a ratio satisfies.
type WCAGResult struct {
	AA    bool  `json:"AA"`
	AAA   bool  `json:"AAA"`
	Level Level `json:"level"`
}

// IsLargeText applies the WCAG definition of large text.
func IsLargeText(fontSize float64, bold bool) bool {
	return fontSize >= largeTextSize || (fontSize >= largeBoldTextSize && bold)
}

// WCAGLevel evaluates ratio against the AA and AAA thresholds for the given
// text size. Large text passes AA at 3.0 and AAA at 4.5, other text needs 4.5
// and 7.0.
func WCAGLevel(ratio, fontSize float64, bold bool) WCAGResult {
	aaThreshold, aaaThreshold := 4.5, 7.0
	if IsLargeText(fontSize, bold) {
		aaThreshold, aaaThreshold = 3.0, 4.5
	}

	res := WCAGResult{
		AA:    ratio >= aaThreshold,
		AAA:   ratio >= aaaThreshold,
		Level: LevelFail,
	}
	switch {
	case res.AAA:
		res.Level = LevelAAA
	case res.AA:
		res.Level = LevelAA
	}
	return res
}

// EstimateHumanVisibility returns a 0-100 score for how easily a person can
// read text. It is a heuristic blend of normalised contrast (weight 0.6), size
// relative to a 12px baseline capped at 2x (0.25) and a viewing distance
// penalty beyond 30cm floored at 0.2 (0.15). The weights are tuning values,
// not a model of human acuity.
func EstimateHumanVisibility(ratio, fontSize, distanceCm float64) int {
	contrastFactor := math.Min(ratio/21, 1)
	sizeFactor := math.Min(fontSize/12, 2)
	distanceFactor := math.Max(1-(distanceCm-30)/100, 0.2)

	score := math.Round((contrastFactor*0.6 + sizeFactor*0.25 + distanceFactor*0.15) * 100)
	return int(math.Max(0, math.Min(score, 100)))
}

// IsAttackerSweetSpot reports whether ratio lies in the band that is hard for
// people to notice but still recoverable by OCR: [1.1,2.0] for text of 18px
// and up, [1.2,2.5] otherwise.
func IsAttackerSweetSpot(ratio, fontSize float64) bool {
	lower, upper := 1.2, 2.5
	if fontSize >= largeTextSize {
		lower, upper = 1.1, 2.0
	}
	return ratio >= lower && ratio <= upper
}

// Report bundles every metric for one foreground/background pairing.
type Report struct {
	Ratio      float64    `json:"contrastRatio"`
	WCAG       WCAGResult `json:"wcag"`
	Visibility int        `json:"humanVisibility"`
	SweetSpot  bool       `json:"attackerSweetSpot"`
}

func Analyze(ratio, fontSize float64, bold bool, distanceCm float64) Report {
	if distanceCm <= 0 {
		distanceCm = DefaultViewingDistanceCm
	}
	return Report{
		Ratio:      ratio,
		WCAG:       WCAGLevel(ratio, fontSize, bold),
		Visibility: EstimateHumanVisibility(ratio, fontSize, distanceCm),
		SweetSpot:  IsAttackerSweetSpot(ratio, fontSize),
	}
}

// RampStep is one blend on the way from a background color to a foreground
// color, measured against the background.
type RampStep struct {
	Factor float64 `json:"factor"`
	Color  string  `json:"color"`
	Report
}

// Ramp blends background toward foreground in steps evenly spaced colors,
// both ends included. It returns nil for fewer than two steps or malformed
// colors.
func Ramp(background, foreground string, steps int, fontSize float64, bold bool, distanceCm float64) []RampStep {
	if steps < 2 {
		return nil
	}
	if _, ok := contrast.HexToRGB(background); !ok {
		return nil
	}
	if _, ok := contrast.HexToRGB(foreground); !ok {
		return nil
	}

	ramp := make([]RampStep, steps)
	for i := range ramp {
		factor := float64(i) / float64(steps-1)
		blended := contrast.InterpolateColor(background, foreground, factor)
		ramp[i] = RampStep{
			Factor: factor,
			Color:  blended,
			Report: Analyze(contrast.Ratio(background, blended), fontSize, bold, distanceCm),
		}
	}
	return ramp
}
