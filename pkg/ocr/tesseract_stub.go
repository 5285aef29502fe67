//go:build !ocr

package ocr

import (
	"context"
	"image"
)

const Enabled = false

// TesseractEngine is unavailable without the ocr build tag.
type TesseractEngine struct{}

func NewTesseractEngine(languages []string) (*TesseractEngine, error) {
	return nil, ErrOCRNotEnabled
}

func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (Result, error) {
	return Result{}, ErrOCRNotEnabled
}

func (e *TesseractEngine) Close() error {
	return nil
}
