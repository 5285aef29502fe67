package cli

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/NotSooShariff/adversarial-vision/pkg/imageio"
)

func MarkFlagsRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func NewSpinner() *spinner.Spinner {
	return spinner.New(spinner.CharSets[4], 100*time.Millisecond)
}

func readImageFile(codec *imageio.Codec, path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func writePNGFile(codec *imageio.Codec, path string, img image.Image) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := codec.EncodePNG(f, img); err != nil {
		_ = f.Close()
		return 0, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	return stat.Size(), f.Close()
}
