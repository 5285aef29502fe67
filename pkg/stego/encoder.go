// Package stego hides short text messages in the least significant bits of
// selected color channels of an RGBA bitmap, and reads them back.
package stego

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/NotSooShariff/adversarial-vision/internal/bits"
	"github.com/NotSooShariff/adversarial-vision/pkg/model"
)

const bytesPerPixel = 4

var (
	ErrCapacity = errors.New("text too long for the given image and bit configuration")
)

type Encoder struct {
	image  *image.NRGBA
	config Config
	stats  model.EmbedStats
}

// NewEncoder prepares an encoder working on a private copy of img, so the
// caller's bitmap is never modified.
func NewEncoder(img image.Image, config Config) (*Encoder, error) {
	config.PopulateUnsetConfigVars()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Encoder{
		image:  imaging.Clone(img),
		config: config,
	}, nil
}

func (e *Encoder) Stats() model.EmbedStats {
	return e.stats
}

// Image returns the encoder's bitmap, which holds the message once
// EncodeMessage succeeded.
func (e *Encoder) Image() *image.NRGBA {
	return e.image
}

// CapacityBits is the payload budget of the encoder's image, terminator
// included.
func (e *Encoder) CapacityBits() int {
	return e.config.CapacityBits(len(e.image.Pix) / bytesPerPixel)
}

// EncodeMessage embeds message followed by a zero byte terminator. If the
// payload does not fit, ErrCapacity is returned and the bitmap is untouched.
func (e *Encoder) EncodeMessage(message string) error {
	encodeStart := time.Now()
	defer func() {
		e.stats.Embedding = time.Since(encodeStart)
	}()

	payload, err := EncodeMessage(message)
	if err != nil {
		return err
	}

	requiredBits := len(payload) * 8
	availableBits := e.CapacityBits()
	if requiredBits > availableBits {
		return fmt.Errorf("%w: message needs %d bits, image holds %d", ErrCapacity, requiredBits, availableBits)
	}

	e.encodeDataToRawImage(payload)

	e.stats.TextLength = len(payload) - 1
	e.stats.BitsEmbedded = requiredBits
	e.stats.CapacityBits = availableBits
	return nil
}

func (e *Encoder) encodeDataToRawImage(payload []byte) {
	br := bits.NewBitReader(payload)
	channels := e.config.ChannelOffsets()
	bitsPerChannel := uint(e.config.BitsPerChannel)
	clearMask := ^e.config.mask()

	for p := 0; p < len(e.image.Pix) && br.BitsLeftToRead() > 0; p += bytesPerPixel {
		for _, channel := range channels {
			if br.BitsLeftToRead() == 0 {
				break
			}
			// Clear least significant bits to use, and then add the new bits
			e.image.Pix[p+channel] = e.image.Pix[p+channel]&clearMask | br.ReadBits(bitsPerChannel)
		}
	}
}

// Embed is a convenience wrapper that returns a copy of img carrying message.
func Embed(img image.Image, config Config, message string) (*image.NRGBA, model.EmbedStats, error) {
	enc, err := NewEncoder(img, config)
	if err != nil {
		return nil, model.EmbedStats{}, err
	}
	if err := enc.EncodeMessage(message); err != nil {
		return nil, model.EmbedStats{}, err
	}
	return enc.Image(), enc.Stats(), nil
}
