package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
	"github.com/NotSooShariff/adversarial-vision/pkg/visibility"
)

const maxRampSteps = 64

type contrastOpts struct {
	foreground string
	background string
	fontSize   float64
	bold       bool
	distance   float64
	steps      int
}

func (a *app) contrastCommand() *cobra.Command {
	opts := contrastOpts{}

	contrastCmd := &cobra.Command{
		Use:     "contrast",
		Example: "advision contrast --fg \"#000000\" --bg \"#FFFFFF\" --font-size 12 --steps 11",
		Short:   "Measure how visible text of one color is on another",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.steps != 0 && (opts.steps < 2 || opts.steps > maxRampSteps) {
				return fmt.Errorf("--steps must be between 2 and %d", maxRampSteps)
			}
			foreground, ok := contrast.HexToRGB(opts.foreground)
			if !ok {
				return fmt.Errorf("--fg %q is not a hex color", opts.foreground)
			}
			background, ok := contrast.HexToRGB(opts.background)
			if !ok {
				return fmt.Errorf("--bg %q is not a hex color", opts.background)
			}

			report := visibility.Analyze(contrast.RatioRGB(foreground, background), opts.fontSize, opts.bold, opts.distance)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contrast ratio: %.2f:1\n", report.Ratio)
			fmt.Fprintf(out, "WCAG level: %s (AA %t, AAA %t)\n", report.WCAG.Level, report.WCAG.AA, report.WCAG.AAA)
			fmt.Fprintf(out, "Human visibility: %d/100\n", report.Visibility)
			fmt.Fprintf(out, "Attacker sweet spot: %t\n", report.SweetSpot)

			for _, step := range visibility.Ramp(opts.background, opts.foreground, opts.steps, opts.fontSize, opts.bold, opts.distance) {
				fmt.Fprintf(out, "%s %5.2f:1 %-4s visibility %3d/100 sweet spot %t\n",
					step.Color, step.Ratio, step.WCAG.Level, step.Visibility, step.SweetSpot)
			}
			return nil
		},
	}

	contrastCmd.Flags().StringVar(&opts.foreground, "fg", "", "Text color in hex format")
	contrastCmd.Flags().StringVar(&opts.background, "bg", "", "Background color in hex format")
	contrastCmd.Flags().Float64Var(&opts.fontSize, "font-size", 16, "Font size in pixels")
	contrastCmd.Flags().BoolVar(&opts.bold, "bold", false, "Whether the text is bold")
	contrastCmd.Flags().Float64Var(&opts.distance, "distance", visibility.DefaultViewingDistanceCm, "Viewing distance in centimetres")
	contrastCmd.Flags().IntVar(&opts.steps, "steps", 0, "Also measure this many blends from --bg to --fg, ends included")

	MarkFlagsRequired(contrastCmd, "fg", "bg")
	return contrastCmd
}

type ocrOpts struct {
	sourceImage string
	options     ocr.Options
}

func (a *app) ocrCommand() *cobra.Command {
	opts := ocrOpts{}

	ocrCmd := &cobra.Command{
		Use:     "ocr",
		Example: "advision ocr --image output.png --contrast-stretch --equalize",
		Short:   "Recognize text in an image, optionally enhancing faint text first",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := a.codec()
			if err != nil {
				return err
			}
			img, err := readImageFile(codec, opts.sourceImage)
			if err != nil {
				return err
			}

			engine, err := ocr.NewTesseractEngine(a.config.OCR.Languages)
			if err != nil {
				return err
			}
			defer engine.Close()

			s := NewSpinner()
			s.Prefix = "Recognizing text "
			s.Start()
			result, err := ocr.Recognize(cmd.Context(), engine, img, opts.options)
			s.Stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Text: %s\n", result.Text)
			fmt.Fprintf(out, "Confidence: %.1f%%\n", result.Confidence)
			fmt.Fprintf(out, "Words: %d\n", len(result.Words))
			fmt.Fprintf(out, "Actionable content: %t\n", result.Actionable)
			fmt.Fprintf(out, "Processing time: %s\n", result.ProcessingTime)
			return nil
		},
	}

	ocrCmd.Flags().StringVar(&opts.sourceImage, "image", "", "Image to recognize text in")
	ocrCmd.Flags().BoolVar(&opts.options.ContrastStretch, "contrast-stretch", false, "Stretch the gray range to the full 0-255 scale")
	ocrCmd.Flags().BoolVar(&opts.options.HistogramEqualization, "equalize", false, "Equalize the gray histogram")
	ocrCmd.Flags().BoolVar(&opts.options.HighPassFilter, "high-pass", false, "Sharpen edges with a 3x3 high pass kernel")
	ocrCmd.Flags().IntVar(&opts.options.Threshold, "threshold", 0, "Binarize at this gray level, 0 disables")

	MarkFlagsRequired(ocrCmd, "image")
	return ocrCmd
}
