package cli

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/test"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := RootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSourceImage(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, test.GenerateUniformImage(width, height, color.NRGBA{R: 240, G: 240, B: 240, A: 255})))
	require.NoError(t, f.Close())
	return path
}

func TestTransformCommand(t *testing.T) {
	source := writeSourceImage(t, 120, 60)
	output := filepath.Join(t.TempDir(), "output.png")

	stdout, err := runCommand(t, "image", "transform",
		"--technique", "low-opacity",
		"--image", source,
		"--output", output,
		"--text", "hidden",
		"--params", `{"opacity":0.5,"y":40,"fontFamily":"Comic Sans MS"}`,
		"--png-compression", "best",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated "+output)
	assert.Contains(t, stdout, `Font family "Comic Sans MS" is not available`)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())
}

func TestTransformCommandVector(t *testing.T) {
	stdout, err := runCommand(t, "image", "transform",
		"--technique", "svg-path",
		"--image", "unused.png",
		"--text", "outline",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"strokeWidth": 0.5`)
	assert.Contains(t, stdout, `"text": "outline"`)
}

func TestTransformCommandErrors(t *testing.T) {
	source := writeSourceImage(t, 10, 10)

	_, err := runCommand(t, "image", "transform", "--technique", "low-opacity", "--image", source, "--text", "hi")
	assert.ErrorIs(t, err, errNoOutput)

	_, err = runCommand(t, "image", "transform", "--technique", "low-opacity", "--image", source, "--text", "hi", "--params", "[1]")
	assert.ErrorContains(t, err, "--params")

	_, err = runCommand(t, "image", "transform", "--technique", "invisible-ink", "--image", source, "--text", "hi")
	assert.Error(t, err)

	_, err = runCommand(t, "image", "transform", "--technique", "low-opacity", "--image", source)
	assert.ErrorContains(t, err, "text")
}

func TestSteganographyCommands(t *testing.T) {
	source := writeSourceImage(t, 32, 32)
	output := filepath.Join(t.TempDir(), "stego.png")
	message := "the quick brown fox"

	_, err := runCommand(t, "image", "transform",
		"--technique", "steganography",
		"--image", source,
		"--output", output,
		"--text", message,
		"--params", `{"bitsPerChannel":2,"channels":"rb"}`,
	)
	require.NoError(t, err)

	stdout, err := runCommand(t, "image", "extract", "--image", output, "--bits", "2", "--channels", "rb")
	require.NoError(t, err)
	assert.Equal(t, message, strings.TrimSpace(stdout))

	_, err = runCommand(t, "image", "extract", "--image", output, "--bits", "5")
	assert.Error(t, err)
}

func TestCapacityCommand(t *testing.T) {
	source := writeSourceImage(t, 10, 10)

	stdout, err := runCommand(t, "image", "capacity", "--image", source)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Image: 10x10")
	assert.Contains(t, stdout, "Capacity: 300 bits")
	assert.Contains(t, stdout, "Longest message: 36 characters")

	stdout, err = runCommand(t, "image", "capacity", "--image", source, "--bits", "3", "--channels", "r")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Capacity: 300 bits")
}

func TestContrastCommand(t *testing.T) {
	stdout, err := runCommand(t, "contrast", "--fg", "#000000", "--bg", "#FFFFFF")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Contrast ratio: 21.00:1")
	assert.Contains(t, stdout, "WCAG level: AAA")
	assert.Contains(t, stdout, "Attacker sweet spot: false")

	stdout, err = runCommand(t, "contrast", "--fg", "#E8E8E8", "--bg", "#FFFFFF", "--font-size", "12")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Attacker sweet spot: true")

	_, err = runCommand(t, "contrast", "--fg", "nope", "--bg", "#FFFFFF")
	assert.ErrorContains(t, err, "--fg")

	stdout, err = runCommand(t, "contrast", "--fg", "#000000", "--bg", "#FFFFFF", "--steps", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "#ffffff  1.00:1 FAIL")
	assert.Contains(t, stdout, "#808080")
	assert.Contains(t, stdout, "#000000 21.00:1 AAA")

	_, err = runCommand(t, "contrast", "--fg", "#000000", "--bg", "#FFFFFF", "--steps", "1")
	assert.ErrorContains(t, err, "--steps")
}

func TestOCRCommandWithoutSupport(t *testing.T) {
	if ocr.Enabled {
		t.Skip("built with OCR support")
	}
	source := writeSourceImage(t, 10, 10)

	_, err := runCommand(t, "ocr", "--image", source)
	assert.ErrorIs(t, err, ocr.ErrOCRNotEnabled)
}

func TestInvalidConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image:\n  png_compression: maximum\n"), 0o644))
	source := writeSourceImage(t, 10, 10)

	_, err := runCommand(t, "--config", path, "image", "capacity", "--image", source)
	assert.ErrorContains(t, err, "png_compression")
}

func TestMemoryProfiler(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profiles")
	source := writeSourceImage(t, 10, 10)

	_, err := runCommand(t, "--mem-profile-dir", dir, "image", "capacity", "--image", source)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
