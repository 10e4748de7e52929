// Package images - This file contains the per-region foreground segmentation
// using OpenCV (via gocv).
//
// Each monitored region owns one ForegroundSegmenter. The segmenter keeps a MOG2
// background model learned only from that region's pixels, so entry, exit and mid-belt
// scenes never contaminate each other.
//
// Pipeline Overview:
//
// ┌──────────────┐
// │ Region view  │
// └──────┬───────┘
// ┌────────────────────────────┐
// │ Background Subtraction     │
// │ (MOG2, shadows disabled)   │
// └──────┬─────────────────────┘
// ┌────────────────────────────┐
// │ Binarize (>= 200)          │
// └──────┬─────────────────────┘
// ┌────────────────────────────┐
// │ External contours + area   │
// └──────┬─────────────────────┘
// ┌────────────────────────────┐
// │ Presence (bool)            │
// └────────────────────────────┘
//
// Usage:
//
//	seg := images.NewForegroundSegmenter(images.DefaultSegmenterConfig())
//	defer seg.Close()
//
//	for {
//	    roi, ok := images.ExtractRegion(frame, bounds)
//	    if !ok {
//	        continue
//	    }
//	    mask, err := seg.Apply(roi)
//	    roi.Close()
//	    ...
//	}
//
// Note: You must call Close() when finished to release native resources.
package images

import (
	"sync"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// SegmenterConfig configures the MOG2 background model.
type SegmenterConfig struct {
	// History is the number of frames the background model learns from.
	History int
	// VarThreshold is the squared Mahalanobis distance above which a pixel is foreground.
	VarThreshold float64
	// DetectShadows marks shadows separately. When false shadows count as background.
	DetectShadows bool
}

// DefaultSegmenterConfig returns the production line settings: a 50 frame history, a
// variance threshold of 50 and no shadow detection.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		History:       50,
		VarThreshold:  50,
		DetectShadows: false,
	}
}

// ForegroundSegmenter produces foreground masks for one region and keeps adapting its
// background model with every frame it sees.
//
// This struct is stateful and must not be shared between regions.
// Always call Close() when done to release native resources.
type ForegroundSegmenter struct {
	config     SegmenterConfig
	subtractor gocv.BackgroundSubtractorMOG2
	mask       gocv.Mat
	frames     int64
	mu         sync.Mutex
}

// NewForegroundSegmenter creates a segmenter with an empty background model.
//
// Arguments:
//   - config: MOG2 parameters.
//
// Returns:
//   - *ForegroundSegmenter: The initialized segmenter.
func NewForegroundSegmenter(config SegmenterConfig) *ForegroundSegmenter {
	return &ForegroundSegmenter{
		config: config,
		subtractor: gocv.NewBackgroundSubtractorMOG2WithParams(
			config.History,
			config.VarThreshold,
			config.DetectShadows,
		),
		mask: gocv.NewMat(),
	}
}

// Apply classifies every pixel of roi as foreground (255) or background (0) and updates
// the background model with roi.
//
// The returned mask has the spatial size of roi. It is owned by the segmenter and stays
// valid until the next Apply or Close; callers must not close it.
//
// Arguments:
//   - roi: The region image, typically a view returned by ExtractRegion.
//
// Returns:
//   - gocv.Mat: The single-channel foreground mask.
//   - error: An error if roi is empty or the subtractor fails.
func (s *ForegroundSegmenter) Apply(roi gocv.Mat) (gocv.Mat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if roi.Empty() {
		return s.mask, errors.New("empty region image")
	}
	if err := s.subtractor.Apply(roi, &s.mask); err != nil {
		return s.mask, errors.Wrap(err, "background subtraction")
	}
	s.frames++
	return s.mask, nil
}

// Frames returns the number of frames the background model has learned from.
func (s *ForegroundSegmenter) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Reset discards the learned background.
//
// Use this when the camera moves or the stream restarts.
func (s *ForegroundSegmenter) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subtractor.Close()
	s.subtractor = gocv.NewBackgroundSubtractorMOG2WithParams(
		s.config.History,
		s.config.VarThreshold,
		s.config.DetectShadows,
	)
	s.frames = 0
}

// Close releases all OpenCV native resources used by the segmenter.
func (s *ForegroundSegmenter) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mask.Close()
	s.subtractor.Close()
}
