//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

const Enabled = true

// TesseractEngine runs recognition through libtesseract. A client handles one
// image at a time, so calls are serialized.
type TesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
}

func NewTesseractEngine(languages []string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if len(languages) > 0 {
		if err := client.SetLanguage(languages...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set ocr languages: %w", err)
		}
	}
	return &TesseractEngine{client: client}, nil
}

func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("failed to encode image for ocr: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("failed to load image into ocr engine: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("ocr failed: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read ocr word boxes: %w", err)
	}

	result := Result{Text: text, Words: make([]Word, 0, len(boxes))}
	var confidenceSum float64
	for _, box := range boxes {
		result.Words = append(result.Words, Word{
			Text:       box.Word,
			Confidence: box.Confidence,
			BBox:       BBox{X0: box.Box.Min.X, Y0: box.Box.Min.Y, X1: box.Box.Max.X, Y1: box.Box.Max.Y},
		})
		confidenceSum += box.Confidence
	}
	if len(boxes) > 0 {
		result.Confidence = confidenceSum / float64(len(boxes))
	}
	return result, nil
}

func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
