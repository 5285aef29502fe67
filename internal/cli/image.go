package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/NotSooShariff/adversarial-vision/pkg/model"
	"github.com/NotSooShariff/adversarial-vision/pkg/stego"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"
)

func (a *app) imageCommands() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:     "image",
		Short:   "Embeds text into images and reads hidden messages back",
		Example: "advision image transform --technique low-contrast --image source.png --output output.png --text \"Hidden text\"",
	}

	imageCmd.AddCommand(a.transformImageCommand(), a.extractImageCommand(), a.capacityImageCommand())
	return imageCmd
}

type transformImageOpts struct {
	technique      string
	sourceImage    string
	outputImage    string
	text           string
	params         string
	pngCompression string
}

func (a *app) transformImageCommand() *cobra.Command {
	opts := transformImageOpts{}

	transformCmd := &cobra.Command{
		Use:     "transform",
		Example: "advision image transform --technique microtext-tiling --image source.png --output output.png --text \"Hidden text\" --params '{\"rotation\":45}'",
		Short:   "Embed text into an image with one technique",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transformImage(cmd, opts)
		},
	}

	transformCmd.Flags().StringVar(&opts.technique, "technique", "", "Technique to apply. One of low-contrast, low-opacity, micro-font, svg-path, microtext-tiling, steganography")
	transformCmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to embed the text into (original will not be touched)")
	transformCmd.Flags().StringVar(&opts.outputImage, "output", "", "Path of the PNG to generate. Not used by svg-path, which prints its configuration instead")
	transformCmd.Flags().StringVar(&opts.text, "text", "", "Text to embed")
	transformCmd.Flags().StringVar(&opts.params, "params", "{}", "Technique parameters as a JSON object, e.g. {\"contrastRatio\":1.2}")
	transformCmd.Flags().StringVar(&opts.pngCompression, "png-compression", "default", "Compression for output png. Options are default, none, fast, best")

	MarkFlagsRequired(transformCmd, "technique", "image", "text")
	return transformCmd
}

func (a *app) transformImage(cmd *cobra.Command, opts transformImageOpts) error {
	engine, err := a.engine()
	if err != nil {
		return err
	}
	params, err := withText(opts.params, opts.text)
	if err != nil {
		return err
	}
	config, err := engine.ParseParams(opts.technique, params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if config.Technique().Kind() == transform.KindVector {
		result, err := engine.Apply(nil, config)
		if err != nil {
			return err
		}
		encoded, err := json.MarshalIndent(result.Parameters, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(encoded))
		return err
	}

	if opts.outputImage == "" {
		return errNoOutput
	}
	codec, err := a.codec()
	if err != nil {
		return err
	}

	s := NewSpinner()
	s.Prefix = "Reading source image from disk "
	s.Start()
	defer s.Stop()

	var stats model.TransformStats
	start := time.Now()
	srcImage, err := readImageFile(codec, opts.sourceImage)
	if err != nil {
		return err
	}
	stats.ImageDecoding = time.Since(start)

	s.Prefix = fmt.Sprintf("Applying %s ", config.Technique())
	result, err := engine.Apply(srcImage, config)
	if err != nil {
		return err
	}
	stats.Transform = result.Duration

	s.Prefix = "Generating output PNG image "
	start = time.Now()
	size, err := writePNGFile(codec, opts.outputImage, result.Image)
	if err != nil {
		return err
	}
	stats.ImageEncoding = time.Since(start)
	s.Stop()

	fmt.Fprintf(out, "Generated %s (%s) with %s\n", opts.outputImage, humanize.Bytes(uint64(size)), config.Technique())
	if family, missing := engine.MissingFontFamily(config); missing {
		fmt.Fprintf(out, "Font family %q is not available, the default font was used\n", family)
	}
	fmt.Fprintf(out, "Image decode time: %s\n", stats.ImageDecoding)
	fmt.Fprintf(out, "Transform time: %s\n", stats.Transform)
	fmt.Fprintf(out, "Output image encode time: %s\n", stats.ImageEncoding)
	if result.Embed != nil {
		fmt.Fprintf(out, "Embedded %d bits of %d available\n", result.Embed.BitsEmbedded, result.Embed.CapacityBits)
	}
	return nil
}

// withText adds text to the JSON object params.
func withText(params, text string) ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(params), &fields); err != nil {
		return nil, fmt.Errorf("--params must be a JSON object: %w", err)
	}
	encodedText, err := json.Marshal(text)
	if err != nil {
		return nil, err
	}
	fields["text"] = encodedText
	return json.Marshal(fields)
}

type stegoOpts struct {
	sourceImage    string
	bitsPerChannel int
	channels       string
}

func (o stegoOpts) config() (stego.Config, error) {
	config := stego.Config{BitsPerChannel: o.bitsPerChannel, Channels: o.channels}
	return config, config.Validate()
}

func addStegoFlags(cmd *cobra.Command, opts *stegoOpts) {
	cmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to read")
	cmd.Flags().IntVar(&opts.bitsPerChannel, "bits", stego.DefaultBitsPerChannel, "Low bits of each selected channel that carry the message. Can be 1-3")
	cmd.Flags().StringVar(&opts.channels, "channels", stego.DefaultChannels, "Channels that carry the message. One of rgb, r, g, b, rg, rb, gb")
	MarkFlagsRequired(cmd, "image")
}

func (a *app) extractImageCommand() *cobra.Command {
	opts := stegoOpts{}

	extractCmd := &cobra.Command{
		Use:     "extract",
		Example: "advision image extract --image encoded.png --bits 2 --channels rgb",
		Short:   "Read a message hidden with the steganography technique",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.config()
			if err != nil {
				return err
			}
			codec, err := a.codec()
			if err != nil {
				return err
			}

			s := NewSpinner()
			s.Prefix = "Reading source image from disk "
			s.Start()
			defer s.Stop()

			img, err := readImageFile(codec, opts.sourceImage)
			if err != nil {
				return err
			}

			s.Prefix = "Decoding message "
			decoder, err := stego.NewDecoder(img, config)
			if err != nil {
				return err
			}
			message, err := decoder.DecodeMessage()
			if err != nil {
				return err
			}
			s.Stop()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), message)
			return err
		},
	}

	addStegoFlags(extractCmd, &opts)
	return extractCmd
}

func (a *app) capacityImageCommand() *cobra.Command {
	opts := stegoOpts{}

	capacityCmd := &cobra.Command{
		Use:     "capacity",
		Example: "advision image capacity --image source.png --bits 1 --channels rgb",
		Short:   "Report how long a message an image can hide",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.config()
			if err != nil {
				return err
			}
			codec, err := a.codec()
			if err != nil {
				return err
			}
			img, err := readImageFile(codec, opts.sourceImage)
			if err != nil {
				return err
			}

			capacityBits := config.CapacityBits(img.Rect.Dx() * img.Rect.Dy())
			maxCharacters := max(capacityBits/8-1, 0)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Image: %dx%d\n", img.Rect.Dx(), img.Rect.Dy())
			fmt.Fprintf(out, "Capacity: %d bits (%s)\n", capacityBits, humanize.Bytes(uint64(capacityBits/8)))
			fmt.Fprintf(out, "Longest message: %s characters\n", humanize.Comma(int64(maxCharacters)))
			return nil
		},
	}

	addStegoFlags(capacityCmd, &opts)
	return capacityCmd
}
