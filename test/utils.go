package test

import (
	"image"
	"image/color"
	"math/rand"
)

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

// GenerateImage returns a bitmap filled with random colors. With randomizeAlpha
// set, roughly a quarter of the pixels get a random alpha value.
func GenerateImage(width, height int, randomizeAlpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			alpha := uint8(255)
			if randomizeAlpha && rand.Intn(4) == 0 {
				alpha = randUint8()
			}
			img.SetNRGBA(x, y, color.NRGBA{R: randUint8(), G: randUint8(), B: randUint8(), A: alpha})
		}
	}
	return img
}

// GenerateUniformImage returns a bitmap where every pixel is c.
func GenerateUniformImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for p := 0; p < len(img.Pix); p += 4 {
		img.Pix[p], img.Pix[p+1], img.Pix[p+2], img.Pix[p+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// GenerateMessage returns a random printable ASCII string of length n.
func GenerateMessage(n int) string {
	msg := make([]byte, n)
	for i := range msg {
		msg[i] = byte(' ' + rand.Intn('~'-' '+1))
	}
	return string(msg)
}

func randUint8() uint8 {
	return uint8(rand.Intn(256))
}
