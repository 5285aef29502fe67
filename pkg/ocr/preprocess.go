package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Options selects the preprocessing filters applied before recognition, in
// the order they are listed. A zero Threshold disables binarization.
type Options struct {
	ContrastStretch       bool `json:"contrastStretch"`
	HistogramEqualization bool `json:"histogramEqualization"`
	HighPassFilter        bool `json:"highPassFilter"`
	Threshold             int  `json:"threshold,omitempty"`
}

var ErrInvalidThreshold = errors.New("threshold must be between 0 and 255")

func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 255 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, o.Threshold)
	}
	return nil
}

var highPassKernel = [9]float64{
	-1, -1, -1,
	-1, 9, -1,
	-1, -1, -1,
}

// Preprocess returns a filtered copy of img. img itself is not modified.
func Preprocess(img image.Image, opts Options) *image.NRGBA {
	out := imaging.Clone(img)

	if opts.ContrastStretch {
		out = ContrastStretch(out)
	}
	if opts.HistogramEqualization {
		out = EqualizeHistogram(out)
	}
	if opts.HighPassFilter {
		out = HighPass(out)
	}
	if opts.Threshold > 0 {
		out = Threshold(out, opts.Threshold)
	}
	return out
}

// ContrastStretch maps the darkest average gray in img to 0 and the brightest
// to 255, scaling each color channel linearly.
func ContrastStretch(img *image.NRGBA) *image.NRGBA {
	minGray, maxGray := 255.0, 0.0
	for p := 0; p < len(img.Pix); p += 4 {
		avg := averageGray(img.Pix[p], img.Pix[p+1], img.Pix[p+2])
		minGray = math.Min(minGray, avg)
		maxGray = math.Max(maxGray, avg)
	}

	spread := maxGray - minGray
	if spread == 0 {
		return img
	}

	stretch := func(v uint8) uint8 {
		return clampToUint8((float64(v) - minGray) * 255 / spread)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: stretch(c.R), G: stretch(c.G), B: stretch(c.B), A: c.A}
	})
}

// EqualizeHistogram converts img to gray and spreads its gray levels using
// the cumulative distribution of the gray histogram.
func EqualizeHistogram(img *image.NRGBA) *image.NRGBA {
	var histogram [256]int
	for p := 0; p < len(img.Pix); p += 4 {
		histogram[roundedGray(img.Pix[p], img.Pix[p+1], img.Pix[p+2])]++
	}

	totalPixels := len(img.Pix) / 4
	if totalPixels == 0 {
		return img
	}

	var lookup [256]uint8
	cumulative := 0
	for level, count := range histogram {
		cumulative += count
		lookup[level] = uint8(math.Round(float64(cumulative) * 255 / float64(totalPixels)))
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		v := lookup[roundedGray(c.R, c.G, c.B)]
		return color.NRGBA{R: v, G: v, B: v, A: c.A}
	})
}

// HighPass sharpens edges with a 3x3 kernel that has 9 at the center and -1
// around it.
func HighPass(img *image.NRGBA) *image.NRGBA {
	return imaging.Convolve3x3(img, highPassKernel, nil)
}

// Threshold binarizes img: pixels whose average gray is at least level become
// white, the rest black.
func Threshold(img *image.NRGBA, level int) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if averageGray(c.R, c.G, c.B) >= float64(level) {
			return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
		}
		return color.NRGBA{A: c.A}
	})
}

func averageGray(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

func roundedGray(r, g, b uint8) uint8 {
	return uint8(math.Round(averageGray(r, g, b)))
}

func clampToUint8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
