// Package imageio converts between encoded images, as they arrive over the
// wire, and the NRGBA bitmaps the transforms work on.
package imageio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxPixels = 40_000_000
	PNGMIMEType      = "image/png"

	dataURIPrefix = "data:"
	base64Marker  = ";base64,"
)

var (
	ErrDecode            = errors.New("failed to decode image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image has too many pixels")
	ErrEncode            = errors.New("failed to encode image")

	supportedMIMETypes = []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff", "image/webp"}
)

// Codec decodes and encodes bitmaps with a fixed size limit and PNG
// compression level.
type Codec struct {
	MaxPixels   int
	Compression png.CompressionLevel
}

func NewCodec(maxPixels int, compression png.CompressionLevel) *Codec {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &Codec{MaxPixels: maxPixels, Compression: compression}
}

// Decode sniffs the format of data, checks its dimensions against the pixel
// limit and returns the image as an NRGBA bitmap anchored at the origin,
// together with the detected MIME type.
func (c *Codec) Decode(data []byte) (*image.NRGBA, string, error) {
	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), supportedMIMETypes...) {
		return nil, mime.String(), fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime.String())
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, mime.String(), fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, mime.String(), fmt.Errorf("%w: empty image %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}
	if c.MaxPixels > 0 && cfg.Width*cfg.Height > c.MaxPixels {
		return nil, mime.String(), fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, c.MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mime.String(), fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return imaging.Clone(img), mime.String(), nil
}

// DecodeDataURI accepts either a data URI or bare base64 and decodes the image
// it carries.
func (c *Codec) DecodeDataURI(uri string) (*image.NRGBA, string, error) {
	data, err := ParseDataURI(uri)
	if err != nil {
		return nil, "", err
	}
	return c.Decode(data)
}

// EncodePNG writes img as a PNG, which keeps every bit of every channel.
func (c *Codec) EncodePNG(w io.Writer, img image.Image) error {
	encoder := png.Encoder{CompressionLevel: c.Compression}
	if err := encoder.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// EncodeDataURI returns img as a base64 PNG data URI.
func (c *Codec) EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return FormatDataURI(PNGMIMEType, buf.Bytes()), nil
}

// ParseDataURI extracts the payload of a base64 data URI. Input without the
// data: prefix is treated as bare base64.
func ParseDataURI(uri string) ([]byte, error) {
	payload := strings.TrimSpace(uri)
	if strings.HasPrefix(payload, dataURIPrefix) {
		idx := strings.Index(payload, base64Marker)
		if idx < 0 {
			return nil, fmt.Errorf("%w: data URI is not base64 encoded", ErrDecode)
		}
		payload = payload[idx+len(base64Marker):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return data, nil
}

func FormatDataURI(mime string, data []byte) string {
	return dataURIPrefix + mime + base64Marker + base64.StdEncoding.EncodeToString(data)
}

// ParseCompressionLevel maps a config value to a PNG compression level.
func ParseCompressionLevel(level string) (png.CompressionLevel, error) {
	switch strings.ToLower(level) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "fast":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	}
	return png.DefaultCompression, fmt.Errorf("unknown png compression level %q", level)
}
