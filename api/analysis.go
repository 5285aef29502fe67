package api

import (
	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/pkg/visibility"
)

// ContrastRequest asks for a ramp of blends from background to foreground
// when Steps is set.
type ContrastRequest struct {
	Foreground string  `json:"foreground" binding:"required" example:"#777777"`
	Background string  `json:"background" binding:"required" example:"#888888"`
	FontSize   float64 `json:"fontSize,omitempty" example:"16"`
	Bold       bool    `json:"bold,omitempty"`
	Distance   float64 `json:"distance,omitempty" example:"50"`
	Steps      int     `json:"steps,omitempty" binding:"omitempty,gte=2,lte=64" example:"11"`
}

type ContrastResponse struct {
	visibility.Report
	ForegroundLuminance float64               `json:"foregroundLuminance"`
	BackgroundLuminance float64               `json:"backgroundLuminance"`
	Ramp                []visibility.RampStep `json:"ramp,omitempty"`
}

// TestCase is a catalog entry together with the metrics measured from its
// colors, which can differ from the nominal ratio it was listed with.
type TestCase struct {
	contrast.TestCase
	Measured visibility.Report `json:"measured"`
}

type TestCasesResponse struct {
	TestCases []TestCase        `json:"testCases"`
	Presets   []contrast.Preset `json:"presets"`
	Counts    map[string]int    `json:"counts"`
}

type OCRRequest struct {
	Image                 string `json:"image" binding:"required"`
	ContrastStretch       bool   `json:"contrastStretch,omitempty"`
	HistogramEqualization bool   `json:"histogramEqualization,omitempty"`
	HighPassFilter        bool   `json:"highPassFilter,omitempty"`
	Threshold             int    `json:"threshold,omitempty" binding:"gte=0,lte=255" example:"128"`
}

type OCRResponse struct {
	Text           string     `json:"text"`
	Confidence     float64    `json:"confidence"`
	Words          []ocr.Word `json:"words"`
	ProcessingTime string     `json:"processingTime"`
	Actionable     bool       `json:"actionable"`
}

type IndexResponse struct {
	Name        string           `json:"name"`
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Techniques  []TechniqueEntry `json:"techniques"`
	Fonts       []string         `json:"fonts"`
}

type TechniqueEntry struct {
	Technique   string   `json:"technique"`
	Kind        string   `json:"kind"`
	Description string   `json:"description"`
	Note        string   `json:"note,omitempty"`
	URL         string   `json:"url"`
	Methods     []string `json:"methods"`
}
