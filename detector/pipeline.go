// Package detector - This file contains the frame pipeline that drives every region through
// its detection chain and into the counter.
package detector

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-linecounter/controller"
	"github.com/nvr-ai/go-linecounter/images"
	"github.com/nvr-ai/go-linecounter/logging"
)

// Options configures a Pipeline.
type Options struct {
	Segmenter images.SegmenterConfig
	Counter   controller.CounterConfig
}

// DefaultOptions returns the production line settings.
func DefaultOptions() Options {
	return Options{
		Segmenter: images.DefaultSegmenterConfig(),
		Counter:   controller.DefaultCounterConfig(),
	}
}

// Pipeline processes frames in arrival order. Frame n (counting from one) is stamped
// n / fps seconds.
//
// Always call Close() when done.
type Pipeline struct {
	counter   *controller.Counter
	detectors []*RegionDetector
	fps       float64
	frames    int64
	logger    zerolog.Logger
}

// New creates a pipeline with one detector per region.
//
// Arguments:
//   - regions: The monitored regions.
//   - fps: The stream frame rate, used to stamp frames.
//   - opts: Segmenter and counter settings.
//   - logger: Base logger for the pipeline and its regions.
//
// Returns:
//   - *Pipeline: The pipeline with zeroed counts.
//   - error: An error if fps is not positive or the counter configuration is invalid.
func New(regions []controller.Region, fps float64, opts Options, logger zerolog.Logger) (*Pipeline, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", fps)
	}
	counter, err := controller.NewCounter(regions, opts.Counter, logger)
	if err != nil {
		return nil, errors.Wrap(err, "create counter")
	}

	p := &Pipeline{
		counter:   counter,
		detectors: make([]*RegionDetector, len(regions)),
		fps:       fps,
		logger:    logger,
	}
	for i, r := range regions {
		p.detectors[i] = NewRegionDetector(r, opts.Segmenter, logging.WithRegion(logger, r.Name))
	}
	return p, nil
}

// Process runs the next frame through every region and returns the events it confirmed.
//
// A region that does not fit the frame or whose segmentation fails contributes no
// detection for this frame; processing never stops because of it.
func (p *Pipeline) Process(frame gocv.Mat) []controller.Event {
	p.frames++
	t := p.Time()

	var events []controller.Event
	for i, d := range p.detectors {
		present, ok, err := d.Detect(frame)
		if err != nil {
			p.logger.Warn().Err(err).Int64("frame", p.frames).Msg("detection skipped")
			continue
		}
		if !ok {
			continue
		}
		if ev, confirmed := p.counter.Observe(i, present, t); confirmed {
			events = append(events, ev)
		}
	}
	return events
}

// Time returns the timestamp of the most recently processed frame, in seconds.
func (p *Pipeline) Time() float64 {
	return float64(p.frames) / p.fps
}

// Frames returns the number of processed frames.
func (p *Pipeline) Frames() int64 { return p.frames }

// Counter returns the event counter.
func (p *Pipeline) Counter() *controller.Counter { return p.counter }

// Render returns a copy of frame with the regions outlined and the running counts,
// followed by each region's debounce state, written in the top-left corner. The caller
// must close the returned Mat.
func (p *Pipeline) Render(frame gocv.Mat) gocv.Mat {
	vis := frame.Clone()
	for _, d := range p.detectors {
		r := d.Region()
		images.DrawRegion(&vis, r.Bounds, r.Color)
	}
	images.DrawLabels(&vis, p.labels(), 10, 30, 40)
	return vis
}

func (p *Pipeline) labels() []images.Label {
	c := p.counter
	labels := []images.Label{
		{Text: fmt.Sprintf("Burgers: %d", c.Burgers()), Color: controller.BurgerColor},
	}
	if c.HasRole(controller.RoleBurger) {
		labels = append(labels,
			images.Label{Text: fmt.Sprintf("Empty Baskets: %d", c.Count(controller.RoleBasketEntry)), Color: controller.EntryColor},
			images.Label{Text: fmt.Sprintf("Filled Baskets: %d", c.Count(controller.RoleBasketExit)), Color: controller.ExitColor},
		)
	} else {
		labels = append(labels,
			images.Label{Text: fmt.Sprintf("Baskets: %d", c.Count(controller.RoleBasketExit)), Color: controller.EntryColor},
		)
	}
	for i, d := range p.detectors {
		r := d.Region()
		labels = append(labels, images.Label{Text: fmt.Sprintf("%s: %s", r.Name, c.State(i)), Color: r.Color})
	}
	return labels
}

// Close releases every region's background model.
func (p *Pipeline) Close() {
	for _, d := range p.detectors {
		d.Close()
	}
}
