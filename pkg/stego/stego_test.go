package stego

import (
	"fmt"
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotSooShariff/adversarial-vision/test"
)

const testImageSize = 64

type testFunc func(t *testing.T, config Config)

func runWithAllConfigs(t *testing.T, testFunc testFunc) {
	for bitsPerChannel := MinBitsPerChannel; bitsPerChannel <= MaxBitsPerChannel; bitsPerChannel++ {
		for _, channels := range ChannelSets() {
			config := Config{BitsPerChannel: bitsPerChannel, Channels: channels}
			t.Run(fmt.Sprintf("bits-%d/channels-%s", bitsPerChannel, channels), func(t *testing.T) {
				t.Parallel()
				testFunc(t, config)
			})
		}
	}
}

func TestEmbedExtract(t *testing.T) {
	runWithAllConfigs(t, func(t *testing.T, config Config) {
		img := test.GenerateImage(testImageSize, testImageSize, true)
		maxChars := config.CapacityBits(testImageSize*testImageSize)/8 - 1
		message := test.GenerateMessage(maxChars / 2)

		encoded, stats, err := Embed(img, config, message)
		require.NoError(t, err)
		assert.Equal(t, len(message), stats.TextLength)
		assert.Equal(t, (len(message)+1)*8, stats.BitsEmbedded)
		assert.Equal(t, config.CapacityBits(testImageSize*testImageSize), stats.CapacityBits)

		decoded, err := Extract(encoded, config)
		require.NoError(t, err)
		assert.Equal(t, message, decoded)
	})
}

func TestEmbedExtractFullCapacity(t *testing.T) {
	runWithAllConfigs(t, func(t *testing.T, config Config) {
		img := test.GenerateImage(testImageSize, testImageSize, false)
		message := test.GenerateMessage(config.CapacityBits(testImageSize*testImageSize)/8 - 1)

		encoded, _, err := Embed(img, config, message)
		require.NoError(t, err)

		decoded, err := Extract(encoded, config)
		require.NoError(t, err)
		assert.Equal(t, message, decoded)
	})
}

func TestEmbedOnlyTouchesSelectedLowBits(t *testing.T) {
	runWithAllConfigs(t, func(t *testing.T, config Config) {
		img := test.GenerateImage(testImageSize, testImageSize, true)
		message := test.GenerateMessage(100)

		encoded, _, err := Embed(img, config, message)
		require.NoError(t, err)
		require.Equal(t, len(img.Pix), len(encoded.Pix))

		selected := map[int]bool{}
		for _, ch := range config.ChannelOffsets() {
			selected[ch] = true
		}
		mask := config.mask()

		slotsUsed := (PayloadBits(message) + config.BitsPerChannel - 1) / config.BitsPerChannel
		pixelsUsed := (slotsUsed + len(selected) - 1) / len(selected)

		for p := 0; p < len(img.Pix); p += bytesPerPixel {
			for ch := 0; ch < bytesPerPixel; ch++ {
				before, after := img.Pix[p+ch], encoded.Pix[p+ch]
				switch {
				case !selected[ch] || p/bytesPerPixel >= pixelsUsed:
					require.Equal(t, before, after, "pixel %d channel %d", p/bytesPerPixel, ch)
				default:
					require.Equal(t, before&^mask, after&^mask, "pixel %d channel %d", p/bytesPerPixel, ch)
				}
			}
		}
	})
}

func TestEmbedDoesNotModifySource(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize, true)
	original := append([]byte(nil), img.Pix...)

	_, _, err := Embed(img, DefaultConfig(), "hidden instruction")
	require.NoError(t, err)
	assert.Equal(t, original, img.Pix)
}

func TestEmbedIsDeterministic(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize, true)
	config := Config{BitsPerChannel: 2, Channels: "rb"}

	first, _, err := Embed(img, config, "same input")
	require.NoError(t, err)
	second, _, err := Embed(img, config, "same input")
	require.NoError(t, err)
	assert.Equal(t, first.Pix, second.Pix)
}

func TestEmbedKnownBitLayout(t *testing.T) {
	img := test.GenerateUniformImage(16, 1, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF})

	encoded, _, err := Embed(img, Config{BitsPerChannel: 1, Channels: "r"}, "A")
	require.NoError(t, err)

	// 'A' is 0b01000001, followed by eight zero bits
	expectedRed := []byte{0x80, 0x81, 0x80, 0x80, 0x80, 0x80, 0x80, 0x81,
		0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80}
	for x, want := range expectedRed {
		assert.Equal(t, want, encoded.Pix[x*bytesPerPixel], "pixel %d", x)
		assert.Equal(t, byte(0x80), encoded.Pix[x*bytesPerPixel+1])
		assert.Equal(t, byte(0x80), encoded.Pix[x*bytesPerPixel+2])
		assert.Equal(t, byte(0xFF), encoded.Pix[x*bytesPerPixel+3])
	}
}

func TestEmbedCapacity(t *testing.T) {
	t.Run("too long", func(t *testing.T) {
		// 2x2 pixels, 3 channels, 1 bit: 12 bits, one character needs 16
		img := test.GenerateImage(2, 2, false)
		original := append([]byte(nil), img.Pix...)

		enc, err := NewEncoder(img, DefaultConfig())
		require.NoError(t, err)
		err = enc.EncodeMessage("a")
		require.ErrorIs(t, err, ErrCapacity)
		assert.Equal(t, original, enc.Image().Pix)
		assert.Equal(t, original, img.Pix)
	})

	t.Run("exact fit", func(t *testing.T) {
		// 4x2 pixels, 3 channels, 1 bit: 24 bits, two characters plus terminator
		img := test.GenerateImage(4, 2, false)
		encoded, _, err := Embed(img, DefaultConfig(), "ab")
		require.NoError(t, err)

		decoded, err := Extract(encoded, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, "ab", decoded)
	})

	t.Run("empty message", func(t *testing.T) {
		img := test.GenerateImage(4, 1, false)
		encoded, stats, err := Embed(img, DefaultConfig(), "")
		require.NoError(t, err)
		assert.Equal(t, 8, stats.BitsEmbedded)

		decoded, err := Extract(encoded, DefaultConfig())
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})
}

func TestEmbedRejectsUnencodableMessage(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize, false)

	for _, message := range []string{"price: 10€", "nul\x00byte"} {
		_, _, err := Embed(img, DefaultConfig(), message)
		assert.ErrorIs(t, err, ErrUnencodableMessage, message)
	}
}

func TestUnencodableMessageErrorOmitsText(t *testing.T) {
	_, err := EncodeMessage("secret: 10€ owed")
	require.ErrorIs(t, err, ErrUnencodableMessage)
	assert.EqualError(t, err, ErrUnencodableMessage.Error()+": byte 10")
	assert.NotContains(t, err.Error(), "€")
	assert.NotContains(t, err.Error(), "secret")
}

func TestEmbedLatin1(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize, false)

	encoded, _, err := Embed(img, DefaultConfig(), "café über")
	require.NoError(t, err)
	decoded, err := Extract(encoded, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "café über", decoded)
}

func TestInvalidConfig(t *testing.T) {
	img := test.GenerateImage(4, 4, false)

	for _, config := range []Config{
		{BitsPerChannel: 4, Channels: "rgb"},
		{BitsPerChannel: -1, Channels: "rgb"},
		{BitsPerChannel: 1, Channels: "rgba"},
		{BitsPerChannel: 1, Channels: "br"},
	} {
		_, err := NewEncoder(img, config)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", config)
		_, err = NewDecoder(img, config)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", config)
	}
}

func TestConfigDefaults(t *testing.T) {
	config := Config{}
	config.PopulateUnsetConfigVars()
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, []int{0, 1, 2}, config.ChannelOffsets())
	assert.Equal(t, 300, config.CapacityBits(100))
}

func TestExtractWithoutTerminator(t *testing.T) {
	img := test.GenerateUniformImage(8, 8, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	_, err := Extract(img, DefaultConfig())
	assert.ErrorIs(t, err, ErrNoTerminator)
}

func TestExtractFromSubImage(t *testing.T) {
	img := test.GenerateImage(testImageSize, testImageSize, false)
	encoded, _, err := Embed(img, DefaultConfig(), "offset origin")
	require.NoError(t, err)

	// Shift the bitmap so its bounds no longer start at the origin
	shifted := &image.NRGBA{
		Pix:    encoded.Pix,
		Stride: encoded.Stride,
		Rect:   encoded.Rect.Add(image.Pt(10, 10)),
	}
	decoded, err := Extract(shifted, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "offset origin", decoded)
}

func TestExtractShortMessageFromLargeImage(t *testing.T) {
	img := test.GenerateImage(2000, 2000, false)
	encoded, _, err := Embed(img, DefaultConfig(), "hi")
	require.NoError(t, err)

	dec, err := NewDecoder(encoded, DefaultConfig())
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	decoded, err := dec.DecodeMessage()
	runtime.ReadMemStats(&after)

	require.NoError(t, err)
	assert.Equal(t, "hi", decoded)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64*1024))
}
