// Package ocr recovers text from bitmaps. It defines the engine contract,
// the preprocessing filters that help recognition of faint text, and a check
// for text that asks the reader to take an action.
package ocr

import (
	"context"
	"errors"
	"image"
	"time"
)

var ErrOCRNotEnabled = errors.New("ocr support is not compiled into this binary, rebuild with -tags ocr")

type BBox struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

type Result struct {
	Text           string        `json:"text"`
	Confidence     float64       `json:"confidence"`
	Words          []Word        `json:"words"`
	ProcessingTime time.Duration `json:"processingTime"`
	Actionable     bool          `json:"actionable"`
}

// Engine recognizes text in an image. Implementations own native resources
// and must be closed by whoever created them.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (Result, error)
	Close() error
}

// Recognize preprocesses img as requested, runs it through engine and flags
// actionable content in the recognized text.
func Recognize(ctx context.Context, engine Engine, img image.Image, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()

	result, err := engine.Recognize(ctx, Preprocess(img, opts))
	if err != nil {
		return Result{}, err
	}

	result.Actionable = ContainsActionableContent(result.Text)
	result.ProcessingTime = time.Since(start)
	return result, nil
}
