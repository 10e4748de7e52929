// Package profiler - Per-stage timing of the frame loop.
package profiler

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TimeTracker holds timing statistics for one named stage.
type TimeTracker struct {
	Name  string
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Mean returns the average duration, or zero when nothing was recorded.
func (t TimeTracker) Mean() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// Profiler collects stage timings for a run.
//
// It is safe for concurrent use.
type Profiler struct {
	mu        sync.Mutex
	startTime time.Time
	stages    map[string]*TimeTracker
}

// New creates a profiler whose wall clock starts now.
func New() *Profiler {
	return &Profiler{
		startTime: time.Now(),
		stages:    make(map[string]*TimeTracker),
	}
}

// StartOperation begins timing a stage.
//
// Arguments:
// - name: The name of the stage to track
//
// Returns:
// - A function to call when the stage completes
func (p *Profiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one duration to the named stage.
func (p *Profiler) Record(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.stages[name]
	if !exists {
		tracker = &TimeTracker{Name: name, Min: d, Max: d}
		p.stages[name] = tracker
	}
	tracker.Count++
	tracker.Total += d
	if d < tracker.Min {
		tracker.Min = d
	}
	if d > tracker.Max {
		tracker.Max = d
	}
}

// Stages returns a snapshot of every stage, sorted by name.
func (p *Profiler) Stages() []TimeTracker {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]TimeTracker, 0, len(p.stages))
	for _, t := range p.stages {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Elapsed returns the wall time since the profiler was created.
func (p *Profiler) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Report logs one debug line per stage and an info line with the run totals.
func (p *Profiler) Report(logger zerolog.Logger, frames int64) {
	for _, s := range p.Stages() {
		logger.Debug().
			Str("stage", s.Name).
			Int64("count", s.Count).
			Dur("mean", s.Mean()).
			Dur("min", s.Min).
			Dur("max", s.Max).
			Msg("stage timing")
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	elapsed := p.Elapsed()
	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}
	logger.Info().
		Int64("frames", frames).
		Dur("elapsed", elapsed).
		Str("processing_fps", fmt.Sprintf("%.2f", fps)).
		Str("heap", formatBytes(mem.HeapAlloc)).
		Msg("run finished")
}

// formatBytes converts bytes to human-readable format.
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
