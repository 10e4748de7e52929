// Package config holds the line counter settings: compiled-in defaults, optional .env
// file, and LINECOUNT_* environment overrides.
package config

import (
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-linecounter/controller"
	"github.com/nvr-ai/go-linecounter/images"
	"github.com/nvr-ai/go-linecounter/logging"
)

const envPrefix = "LINECOUNT_"

type Config struct {
	// Input. Exactly one of VideoPath and FramesDir is used, VideoPath first.
	VideoPath   string
	FramesDir   string
	FramesFPS   float64
	FallbackFPS float64

	// Detection
	Layout     string
	Thresholds controller.Thresholds
	Counter    controller.CounterConfig
	Segmenter  images.SegmenterConfig

	// Display
	ShowWindow bool
	WaitKey    time.Duration

	// Output
	TimelinePath string
	LogLevel     string
	LogFormat    string
}

// Default returns the compiled-in settings of the production line.
func Default() *Config {
	return &Config{
		FramesFPS:   30,
		FallbackFPS: 30,

		Layout:     controller.LayoutBurger,
		Thresholds: controller.DefaultThresholds(),
		Counter:    controller.DefaultCounterConfig(),
		Segmenter:  images.DefaultSegmenterConfig(),

		ShowWindow: true,
		WaitKey:    30 * time.Millisecond,

		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
	}
}

// Load reads an optional .env file and applies LINECOUNT_* overrides on top of Default.
// Unparseable values keep the default.
//
// A missing .env file is not an error. Any other .env failure is returned alongside the
// environment-only config so the caller can log it once its logger is set up.
func Load() (*Config, error) {
	var loadErr error
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		loadErr = errors.Wrap(err, "load .env")
	}
	return FromEnv(Default()), loadErr
}

// FromEnv applies LINECOUNT_* overrides to cfg and returns it.
func FromEnv(cfg *Config) *Config {
	cfg.VideoPath = getEnv("VIDEO", cfg.VideoPath)
	cfg.FramesDir = getEnv("FRAMES_DIR", cfg.FramesDir)
	cfg.FramesFPS = getEnvFloat("FRAMES_FPS", cfg.FramesFPS)
	cfg.FallbackFPS = getEnvFloat("FALLBACK_FPS", cfg.FallbackFPS)

	cfg.Layout = getEnv("LAYOUT", cfg.Layout)
	cfg.Thresholds.BasketArea.Min = getEnvFloat("BASKET_AREA_MIN", cfg.Thresholds.BasketArea.Min)
	cfg.Thresholds.BasketArea.Max = getEnvFloat("BASKET_AREA_MAX", cfg.Thresholds.BasketArea.Max)
	cfg.Thresholds.BurgerArea.Min = getEnvFloat("BURGER_AREA_MIN", cfg.Thresholds.BurgerArea.Min)
	cfg.Thresholds.BurgerArea.Max = getEnvFloat("BURGER_AREA_MAX", cfg.Thresholds.BurgerArea.Max)
	cfg.Thresholds.BasketInterval = getEnvFloat("BASKET_INTERVAL", cfg.Thresholds.BasketInterval)
	cfg.Thresholds.BurgerInterval = getEnvFloat("BURGER_INTERVAL", cfg.Thresholds.BurgerInterval)
	cfg.Counter.BufferSize = getEnvInt("BUFFER_SIZE", cfg.Counter.BufferSize)
	cfg.Counter.BurgersPerBasket = getEnvInt("BURGERS_PER_BASKET", cfg.Counter.BurgersPerBasket)
	cfg.Segmenter.History = getEnvInt("HISTORY", cfg.Segmenter.History)
	cfg.Segmenter.VarThreshold = getEnvFloat("VAR_THRESHOLD", cfg.Segmenter.VarThreshold)
	cfg.Segmenter.DetectShadows = getEnvBool("DETECT_SHADOWS", cfg.Segmenter.DetectShadows)

	cfg.ShowWindow = getEnvBool("SHOW_WINDOW", cfg.ShowWindow)
	cfg.WaitKey = getEnvDuration("WAIT_KEY", cfg.WaitKey)

	cfg.TimelinePath = getEnv("TIMELINE", cfg.TimelinePath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	return cfg
}

// Validate returns an error naming the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.VideoPath == "" && c.FramesDir == "":
		return errors.New("no input: set a video path or a frames directory")
	case c.Layout != controller.LayoutBasket && c.Layout != controller.LayoutBurger:
		return errors.Errorf("layout %q: want %q or %q", c.Layout, controller.LayoutBasket, controller.LayoutBurger)
	case c.Counter.BufferSize < 1:
		return errors.Errorf("buffer size %d: must be at least 1", c.Counter.BufferSize)
	case c.Counter.BurgersPerBasket < 1:
		return errors.Errorf("burgers per basket %d: must be at least 1", c.Counter.BurgersPerBasket)
	case c.Segmenter.History < 1:
		return errors.Errorf("history %d: must be at least 1", c.Segmenter.History)
	case c.FramesDir != "" && c.VideoPath == "" && c.FramesFPS <= 0:
		return errors.Errorf("frames fps %g: must be positive", c.FramesFPS)
	case c.FallbackFPS <= 0:
		return errors.Errorf("fallback fps %g: must be positive", c.FallbackFPS)
	case c.Thresholds.BasketInterval < 0 || c.Thresholds.BurgerInterval < 0:
		return errors.New("cooldown intervals must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
