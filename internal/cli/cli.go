// Package cli implements the advision command line.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/NotSooShariff/adversarial-vision/internal/config"
	"github.com/NotSooShariff/adversarial-vision/internal/logging"
	"github.com/NotSooShariff/adversarial-vision/pkg/imageio"
	"github.com/NotSooShariff/adversarial-vision/pkg/render"
	"github.com/NotSooShariff/adversarial-vision/pkg/transform"
)

// app is the state shared by every command of one invocation.
type app struct {
	configFile    string
	cpuProfile    string
	memProfileDir string

	// flagBindings maps config keys to the names of flags that override them.
	flagBindings map[string]string

	viper  *viper.Viper
	config *config.Config
}

func RootCommand() *cobra.Command {
	a := &app{flagBindings: map[string]string{
		"server.port":           "port",
		"image.png_compression": "png-compression",
		"fonts.dir":             "fonts-dir",
	}}

	rootCmd := &cobra.Command{
		Use:           "advision",
		Short:         "Embed text into images so that machines can read it while people can hardly see it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file to read instead of searching for config.yaml in . and ./config")
	rootCmd.PersistentFlags().StringVar(&a.cpuProfile, "cpu-profile", "", "Dump CPU profile into the supplied file")
	rootCmd.PersistentFlags().StringVar(&a.memProfileDir, "mem-profile-dir", "", "Dump memory profiles into the supplied directory")

	rootCmd.AddCommand(a.imageCommands(), a.contrastCommand(), a.ocrCommand(), a.serveCommand())
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := RootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}
	for key, flagName := range a.flagBindings {
		if flag := cmd.Flags().Lookup(flagName); flag != nil {
			if err := config.BindFlag(v, key, flag); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Parse(v)
	if err != nil {
		return err
	}
	if err := logging.Configure(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	a.viper, a.config = v, cfg

	if a.cpuProfile != "" {
		if err := StartCPUProfiler(a.cpuProfile); err != nil {
			return err
		}
	}
	if a.memProfileDir != "" {
		StartMemoryProfiler(a.memProfileDir)
	}
	return nil
}

func (a *app) teardown() error {
	StopCPUProfiler()
	return StopMemoryProfiler()
}

func (a *app) codec() (*imageio.Codec, error) {
	compression, err := imageio.ParseCompressionLevel(a.config.Image.PNGCompression)
	if err != nil {
		return nil, fmt.Errorf("image.png_compression: %w", err)
	}
	return imageio.NewCodec(a.config.Image.MaxPixels, compression), nil
}

func (a *app) engine() (*transform.Engine, error) {
	fonts, err := render.NewFontManager(a.config.Fonts.Dir)
	if err != nil {
		return nil, err
	}
	return transform.NewEngine(fonts), nil
}

var errNoOutput = errors.New("--output is required for raster techniques")
