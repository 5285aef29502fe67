//go:build !ocr

package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTesseractDisabled(t *testing.T) {
	assert.False(t, Enabled)

	_, err := NewTesseractEngine([]string{"eng"})
	assert.ErrorIs(t, err, ErrOCRNotEnabled)

	var engine *TesseractEngine
	_, err = engine.Recognize(context.Background(), grayImage(1))
	assert.ErrorIs(t, err, ErrOCRNotEnabled)
}
