package imageio

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/NotSooShariff/adversarial-vision/test"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDataURIRoundTripIsLossless(t *testing.T) {
	codec := NewCodec(0, png.BestSpeed)
	img := test.GenerateImage(32, 16, true)

	uri, err := codec.EncodeDataURI(img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, mime, err := codec.DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, img.Rect, decoded.Rect)
	assert.Equal(t, img.Pix, decoded.Pix)
}

func TestDecodeBareBase64(t *testing.T) {
	codec := NewCodec(0, png.DefaultCompression)
	img := test.GenerateImage(4, 4, false)

	decoded, _, err := codec.DecodeDataURI(base64.StdEncoding.EncodeToString(encodePNG(t, img)))
	require.NoError(t, err)
	assert.Equal(t, img.Pix, decoded.Pix)
}

func TestDecodeNormalizesToNRGBA(t *testing.T) {
	codec := NewCodec(0, png.DefaultCompression)

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	decoded, mime, err := codec.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "image/bmp", mime)
	assert.Equal(t, image.Rect(0, 0, 3, 2), decoded.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, decoded.NRGBAAt(1, 1))
	assert.Len(t, decoded.Pix, 3*2*4)
}

func TestDecodeErrors(t *testing.T) {
	codec := NewCodec(0, png.DefaultCompression)

	t.Run("not an image", func(t *testing.T) {
		_, _, err := codec.Decode([]byte("just some text"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("truncated png", func(t *testing.T) {
		data := encodePNG(t, test.GenerateImage(8, 8, false))
		_, _, err := codec.Decode(data[:40])
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := codec.DecodeDataURI("data:image/png;base64,@@@")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("data uri without base64", func(t *testing.T) {
		_, _, err := codec.DecodeDataURI("data:image/png,rawbytes")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("too many pixels", func(t *testing.T) {
		small := NewCodec(10, png.DefaultCompression)
		_, _, err := small.Decode(encodePNG(t, test.GenerateImage(4, 4, false)))
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})
}

func TestParseCompressionLevel(t *testing.T) {
	for input, expected := range map[string]png.CompressionLevel{
		"":        png.DefaultCompression,
		"default": png.DefaultCompression,
		"NONE":    png.NoCompression,
		"fast":    png.BestSpeed,
		"best":    png.BestCompression,
	} {
		level, err := ParseCompressionLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	_, err := ParseCompressionLevel("ultra")
	assert.Error(t, err)
}
