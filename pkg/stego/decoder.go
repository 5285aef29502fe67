package stego

import (
	"errors"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"github.com/NotSooShariff/adversarial-vision/internal/bits"
	"github.com/NotSooShariff/adversarial-vision/pkg/model"
)

var (
	ErrNoTerminator = errors.New("no message terminator found, the image was likely not encoded with this configuration")
)

// initialMessageBuffer is the starting size of the decode buffer. Messages are
// usually far shorter than the image capacity.
const initialMessageBuffer = 64

type Decoder struct {
	image  *image.NRGBA
	config Config
	stats  model.ExtractStats
}

func NewDecoder(img image.Image, config Config) (*Decoder, error) {
	config.PopulateUnsetConfigVars()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != nrgba.Rect.Dx()*bytesPerPixel {
		nrgba = imaging.Clone(img)
	}

	return &Decoder{image: nrgba, config: config}, nil
}

func (d *Decoder) Stats() model.ExtractStats {
	return d.stats
}

// DecodeMessage walks the pixels in the same order as the encoder and stops at
// the first zero byte.
func (d *Decoder) DecodeMessage() (string, error) {
	decodeStart := time.Now()
	defer func() {
		d.stats.Extraction = time.Since(decodeStart)
	}()

	channels := d.config.ChannelOffsets()
	bitsPerChannel := uint(d.config.BitsPerChannel)
	mask := d.config.mask()

	bw := bits.NewBitWriter(initialMessageBuffer)
	checkedBytes := 0

	for p := 0; p < len(d.image.Pix); p += bytesPerPixel {
		for _, channel := range channels {
			bw.WriteBits(d.image.Pix[p+channel]&mask, bitsPerChannel)
			d.stats.BitsRead += int(bitsPerChannel)

			for ; checkedBytes < bw.CompleteBytes(); checkedBytes++ {
				if bw.Bytes()[checkedBytes] == terminator {
					return decodeMessage(bw.Bytes()[:checkedBytes]), nil
				}
			}
		}
	}

	return "", ErrNoTerminator
}

// Extract is a convenience wrapper around NewDecoder and DecodeMessage.
func Extract(img image.Image, config Config) (string, error) {
	dec, err := NewDecoder(img, config)
	if err != nil {
		return "", err
	}
	return dec.DecodeMessage()
}
