package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-linecounter/config"
	"github.com/nvr-ai/go-linecounter/controller"
	"github.com/nvr-ai/go-linecounter/detector"
	"github.com/nvr-ai/go-linecounter/logging"
	"github.com/nvr-ai/go-linecounter/profiler"
	"github.com/nvr-ai/go-linecounter/report"
	"github.com/nvr-ai/go-linecounter/util"
)

// windowName is the title of the display window.
const windowName = "Burger Line Counter"

func main() {
	cfg, loadErr := config.Load()

	// Flags override .env and environment settings.
	flag.StringVar(&cfg.VideoPath, "video", cfg.VideoPath, "Path to video file (.mp4, .avi, .mov)")
	flag.StringVar(&cfg.FramesDir, "frames", cfg.FramesDir, "Directory of frame-<n>.jpg images, used when -video is empty")
	flag.Float64Var(&cfg.FramesFPS, "frames-fps", cfg.FramesFPS, "Frame rate of the -frames sequence")
	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "Region layout: basket (entry, exit) or burger (entry, exit, burger)")
	flag.IntVar(&cfg.Counter.BufferSize, "buffer", cfg.Counter.BufferSize, "Consecutive detections needed to confirm an event")
	flag.IntVar(&cfg.Counter.BurgersPerBasket, "burgers-per-basket", cfg.Counter.BurgersPerBasket, "Burgers credited per filled basket")
	flag.BoolVar(&cfg.ShowWindow, "show-window", cfg.ShowWindow, "Show the annotated video, press q to stop")
	flag.StringVar(&cfg.TimelinePath, "timeline", cfg.TimelinePath, "Write an event timeline plot to this file")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	flag.Parse()

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("Ignoring .env file, using environment variables and defaults")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("Line counter failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	fps := util.ResolveFPS(src, cfg.FallbackFPS, logger)

	width, height := src.Size()
	regions, err := controller.LayoutRegions(cfg.Layout, width, height, cfg.Thresholds)
	if err != nil {
		return err
	}

	pipeline, err := detector.New(regions, fps, detector.Options{
		Segmenter: cfg.Segmenter,
		Counter:   cfg.Counter,
	}, logging.WithComponent(logger, "pipeline"))
	if err != nil {
		return err
	}
	defer pipeline.Close()

	logger.Info().
		Str("layout", cfg.Layout).
		Int("width", width).
		Int("height", height).
		Float64("fps", fps).
		Int("buffer", cfg.Counter.BufferSize).
		Int("burgers_per_basket", cfg.Counter.BurgersPerBasket).
		Bool("show_window", cfg.ShowWindow).
		Msg("Starting line counter")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prof := profiler.New()
	loop(ctx, cfg, src, pipeline, prof, logger)

	summary := pipeline.Counter().Summary()
	if err := report.Write(os.Stdout, summary); err != nil {
		return err
	}
	if cfg.TimelinePath != "" {
		if err := report.WriteTimeline(cfg.TimelinePath, summary); err != nil {
			logger.Error().Err(err).Msg("Failed to write timeline")
		} else {
			logger.Info().Str("path", cfg.TimelinePath).Msg("Timeline written")
		}
	}
	prof.Report(logging.WithComponent(logger, "profiler"), pipeline.Frames())
	return nil
}

// loop processes frames until the source is exhausted, the user presses q, or the
// process is interrupted.
func loop(ctx context.Context, cfg *config.Config, src util.FrameSource, pipeline *detector.Pipeline, prof *profiler.Profiler, logger zerolog.Logger) {
	var window *gocv.Window
	if cfg.ShowWindow {
		window = gocv.NewWindow(windowName)
		defer window.Close()
	}
	delay := int(cfg.WaitKey.Milliseconds())
	if delay < 1 {
		delay = 1
	}

	frame := gocv.NewMat()
	defer frame.Close()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Interrupted, finishing report")
			return
		default:
		}

		done := prof.StartOperation("read")
		ok := src.Next(&frame)
		done()
		if !ok {
			logger.Info().Int64("frames", pipeline.Frames()).Msg("End of stream")
			return
		}

		done = prof.StartOperation("process")
		pipeline.Process(frame)
		done()

		if window == nil {
			continue
		}

		done = prof.StartOperation("render")
		annotated := pipeline.Render(frame)
		window.IMShow(annotated)
		annotated.Close()
		done()

		if quitKey(window.WaitKey(delay)) {
			logger.Info().Msg("Stopped by user")
			return
		}
	}
}

// quitKey reports whether a WaitKey result is q or Q. Some backends set modifier bits
// above the low byte.
func quitKey(key int) bool {
	k := key & 0xFF
	return k == 'q' || k == 'Q'
}

func openSource(cfg *config.Config) (util.FrameSource, error) {
	if cfg.VideoPath != "" {
		return util.OpenVideo(cfg.VideoPath)
	}
	return util.OpenDirectory(cfg.FramesDir, cfg.FramesFPS)
}
