// combinemr packs metallic and roughness maps into a single glTF
// metallic-roughness texture (R = 255, G = roughness, B = metallic).
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/combine-mr/internal/config"
	"github.com/Faultbox/combine-mr/internal/logger"
	"github.com/Faultbox/combine-mr/internal/preview"
	"github.com/Faultbox/combine-mr/pkg/texture"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// showFunc displays a packed texture and blocks until the viewer is closed.
type showFunc func(img *image.RGBA, opts preview.Options) error

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, preview.Show))
}

func run(args []string, stdout, stderr io.Writer, show showFunc) int {
	flags, err := config.ParseFlags("combinemr", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return exitError
	}

	logOpts := logger.Options{
		Level:   cfg.Logging.Level,
		Console: stderr,
		Color:   stderr == io.Writer(os.Stderr),
	}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(logOpts); err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	packed, err := texture.PackFiles(flags.MetallicPath, flags.RoughnessPath)
	if err != nil {
		logger.Debug("packing failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %s\n", describe(err))
		return exitError
	}
	logger.Info("packed texture",
		zap.String("metallic", packed.MetallicPath),
		zap.String("roughness", packed.RoughnessPath),
		zap.Int("width", packed.Width),
		zap.Int("height", packed.Height),
	)

	if out := outputPath(cfg, flags); out != "" {
		opts := texture.SaveOptions{JPEGQuality: cfg.Output.JPEGQuality}
		if err := texture.SaveWithOptions(out, packed.Image, opts); err != nil {
			logger.Error("failed to save packed texture", zap.String("path", out), zap.Error(err))
			fmt.Fprintf(stderr, "Error: %s\n", describe(err))
			return exitError
		}
		fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", out, packed.Width, packed.Height)
	}

	if cfg.Preview.Enabled {
		opts := preview.DefaultOptions()
		opts.Width = cfg.Preview.Width
		opts.Height = cfg.Preview.Height
		opts.VSync = cfg.Preview.VSync
		opts.Filter = cfg.Preview.Filter
		if err := show(packed.Image, opts); err != nil {
			logger.Error("preview failed", zap.Error(err))
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	return exitOK
}

// outputPath returns where to write the packed texture, or "" for no file.
func outputPath(cfg *config.Config, flags *config.Flags) string {
	if cfg.Output.Path != "" {
		return cfg.Output.Path
	}
	if cfg.Output.Save {
		return texture.DefaultOutputPath(flags.MetallicPath)
	}
	return ""
}

// describe turns a texture error into a one-line message with a hint.
func describe(err error) string {
	switch {
	case errors.Is(err, texture.ErrInvalidPath):
		return fmt.Sprintf("%v\n  please pass paths to existing image files", err)
	case errors.Is(err, texture.ErrDimensionMismatch):
		return fmt.Sprintf("%v\n  make sure the maps have the same dimensions", err)
	case errors.Is(err, texture.ErrDecode):
		return fmt.Sprintf("%v\n  supported formats: png, jpeg, gif, bmp, tiff, webp, tga", err)
	case errors.Is(err, texture.ErrUnsupportedFormat):
		return fmt.Sprintf("%v\n  use a .png, .jpg, .bmp or .tif output path", err)
	default:
		return err.Error()
	}
}
