// Command preview draws a region layout on the first frame of a video or frame sequence and
// saves it as a still, to check the regions against the camera framing.
package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-linecounter/config"
	"github.com/nvr-ai/go-linecounter/controller"
	"github.com/nvr-ai/go-linecounter/images"
	"github.com/nvr-ai/go-linecounter/logging"
	"github.com/nvr-ai/go-linecounter/util"
)

func main() {
	cfg, loadErr := config.Load()

	var (
		output string
		width  int
	)
	flag.StringVar(&cfg.VideoPath, "video", cfg.VideoPath, "Path to video file")
	flag.StringVar(&cfg.FramesDir, "frames", cfg.FramesDir, "Directory of frame-<n>.jpg images, used when -video is empty")
	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "Region layout: basket or burger")
	flag.BoolVar(&cfg.ShowWindow, "show-window", false, "Also show the still until a key is pressed")
	flag.StringVar(&output, "out", "layout.png", "Output image (.png, .jpg or .webp)")
	flag.IntVar(&width, "width", 960, "Output width in pixels, 0 keeps the frame size")
	flag.Parse()

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("Ignoring .env file")
	}
	if err := run(cfg, output, width, logger); err != nil {
		logger.Error().Err(err).Msg("Preview failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, output string, width int, logger zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := images.FormatFromPath(output)
	if err != nil {
		return err
	}

	var src util.FrameSource
	if cfg.VideoPath != "" {
		src, err = util.OpenVideo(cfg.VideoPath)
	} else {
		src, err = util.OpenDirectory(cfg.FramesDir, cfg.FramesFPS)
	}
	if err != nil {
		return err
	}
	defer src.Close()

	img := gocv.NewMat()
	defer img.Close()
	if !src.Next(&img) {
		return errors.New("source has no readable frame")
	}

	regions, err := controller.LayoutRegions(cfg.Layout, img.Cols(), img.Rows(), cfg.Thresholds)
	if err != nil {
		return err
	}
	for _, r := range regions {
		images.DrawRegion(&img, r.Bounds, r.Color)
		images.DrawLabel(&img, r.Name, r.Bounds.Min.X+5, r.Bounds.Min.Y+25, r.Color)
		logger.Info().
			Str("region", r.Name).
			Str("role", r.Role.String()).
			Str("bounds", r.Bounds.String()).
			Bool("fits", images.RegionFits(r.Bounds, img.Cols(), img.Rows())).
			Msg("Region")
	}

	still, err := images.MatToImage(img, width)
	if err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := images.Encode(f, still, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().Str("path", output).Int("width", still.Bounds().Dx()).Msg("Layout still written")

	if cfg.ShowWindow {
		window := gocv.NewWindow("Layout preview")
		defer window.Close()
		window.IMShow(img)
		window.WaitKey(0)
	}
	return nil
}
