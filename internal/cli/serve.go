package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/internal/server"
	"github.com/NotSooShariff/adversarial-vision/pkg/ocr"
)

func (a *app) serveCommand() *cobra.Command {
	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve an API to embed text into images over the web",
		Example: "advision serve --port 8888",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			codec, err := a.codec()
			if err != nil {
				return err
			}

			ocrEngine, err := newOCREngine(a.config.OCR.Languages)
			if err != nil {
				return err
			}
			if ocrEngine != nil {
				defer ocrEngine.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(a.config.Server, engine, codec, ocrEngine).Run(ctx)
		},
	}

	command.Flags().String("port", "8080", "Port on which to start the server")
	command.Flags().String("fonts-dir", "", "Directory with extra .ttf or .otf fonts")

	return command
}

// newOCREngine returns nil when the binary was built without OCR support.
func newOCREngine(languages []string) (ocr.Engine, error) {
	engine, err := ocr.NewTesseractEngine(languages)
	if errors.Is(err, ocr.ErrOCRNotEnabled) {
		logging.BuildLogger().Info("OCR support not compiled in, the OCR endpoint will answer 501")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return engine, nil
}
