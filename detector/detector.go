// Package detector - Per-region detection chain: extract the region, segment the foreground,
// and test contour areas.
package detector

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-linecounter/controller"
	"github.com/nvr-ai/go-linecounter/images"
)

// RegionDetector owns the background model of a single region and reports, frame by
// frame, whether an object of qualifying size is present in it.
//
// Not safe for concurrent use. Always call Close() when done.
type RegionDetector struct {
	region      controller.Region
	segmenter   *images.ForegroundSegmenter
	outOfBounds bool
	logger      zerolog.Logger
}

// NewRegionDetector creates a detector with a fresh background model for region.
func NewRegionDetector(region controller.Region, config images.SegmenterConfig, logger zerolog.Logger) *RegionDetector {
	if region.Area.Empty() {
		logger.Warn().
			Float64("min_area", region.Area.Min).
			Float64("max_area", region.Area.Max).
			Msg("area range is empty, region will never detect")
	}
	return &RegionDetector{
		region:    region,
		segmenter: images.NewForegroundSegmenter(config),
		logger:    logger,
	}
}

// Detect runs the chain on frame.
//
// Arguments:
//   - frame: The full video frame.
//
// Returns:
//   - bool: Whether a contour with a qualifying area was found.
//   - bool: false when the region does not fit the frame; the frame is then skipped
//     for this region and the background model is left untouched.
//   - error: An error if background subtraction failed.
func (d *RegionDetector) Detect(frame gocv.Mat) (bool, bool, error) {
	roi, ok := images.ExtractRegion(frame, d.region.Bounds)
	if !ok {
		if !d.outOfBounds {
			d.outOfBounds = true
			d.logger.Debug().
				Str("bounds", d.region.Bounds.String()).
				Int("frame_width", frame.Cols()).
				Int("frame_height", frame.Rows()).
				Msg("region outside frame, skipping")
		}
		return false, false, nil
	}
	defer roi.Close()

	mask, err := d.segmenter.Apply(roi)
	if err != nil {
		return false, true, errors.Wrapf(err, "region %s", d.region.Name)
	}
	return images.DetectArea(mask, d.region.Area.Contains), true, nil
}

// Region returns the monitored region.
func (d *RegionDetector) Region() controller.Region { return d.region }

// Close releases the background model.
func (d *RegionDetector) Close() {
	d.segmenter.Close()
}
