// Package util - Frame sources feeding the detection pipeline.
package util

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gocv.io/x/gocv"
)

// FrameSource yields decoded frames in order.
type FrameSource interface {
	// Next decodes the next frame into dst. It returns false at end of stream or when
	// a frame cannot be read.
	Next(dst *gocv.Mat) bool
	// FPS returns the frame rate reported by the source.
	FPS() float64
	// Size returns the frame width and height in pixels.
	Size() (int, int)
	// Close releases the source.
	Close() error
}

// ResolveFPS returns the frame rate of src, or fallback with a warning when the source
// reports a non-positive rate. Frame timestamps are derived from the returned value.
func ResolveFPS(src FrameSource, fallback float64, logger zerolog.Logger) float64 {
	fps := src.FPS()
	if fps > 0 {
		return fps
	}
	logger.Warn().Float64("reported", fps).Float64("fallback", fallback).Msg("Source has no frame rate, using fallback")
	return fallback
}

// VideoSource reads frames from a video file through OpenCV.
type VideoSource struct {
	path    string
	capture *gocv.VideoCapture
}

// OpenVideo opens a video file.
//
// Arguments:
//   - path: Path to the video file.
//
// Returns:
//   - *VideoSource: The opened source.
//   - error: An error if the file cannot be opened.
func OpenVideo(path string) (*VideoSource, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		if capture != nil {
			capture.Close()
		}
		return nil, errors.Wrapf(err, "open video %s", path)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Errorf("open video %s: not readable", path)
	}
	return &VideoSource{path: path, capture: capture}, nil
}

// Next implements FrameSource.
func (v *VideoSource) Next(dst *gocv.Mat) bool {
	if ok := v.capture.Read(dst); !ok {
		return false
	}
	return !dst.Empty()
}

// FPS implements FrameSource.
func (v *VideoSource) FPS() float64 {
	return v.capture.Get(gocv.VideoCaptureFPS)
}

// Size implements FrameSource.
func (v *VideoSource) Size() (int, int) {
	return int(v.capture.Get(gocv.VideoCaptureFrameWidth)), int(v.capture.Get(gocv.VideoCaptureFrameHeight))
}

// Close implements FrameSource.
func (v *VideoSource) Close() error {
	return v.capture.Close()
}

// DirectorySource replays an ordered image sequence at a fixed frame rate.
//
// Frame dimensions are taken from the first image.
type DirectorySource struct {
	files  []FrameFile
	next   int
	fps    float64
	width  int
	height int
}

// OpenDirectory lists the frame images of dir (see ListFrameFiles).
//
// Arguments:
//   - dir: Directory holding frame-<n> images.
//   - fps: The rate the sequence was captured at.
//
// Returns:
//   - *DirectorySource: The source positioned at the first frame.
//   - error: An error if the directory holds no readable frame.
func OpenDirectory(dir string, fps float64) (*DirectorySource, error) {
	files, err := ListFrameFiles(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list frames in %s", dir)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no frame images in %s", dir)
	}

	first := gocv.IMRead(files[0].Path, gocv.IMReadColor)
	defer first.Close()
	if first.Empty() {
		return nil, errors.Errorf("decode %s", files[0].Path)
	}

	return &DirectorySource{
		files:  files,
		fps:    fps,
		width:  first.Cols(),
		height: first.Rows(),
	}, nil
}

// Next implements FrameSource. An image that cannot be decoded ends the stream.
func (d *DirectorySource) Next(dst *gocv.Mat) bool {
	if d.next >= len(d.files) {
		return false
	}
	img := gocv.IMRead(d.files[d.next].Path, gocv.IMReadColor)
	defer img.Close()
	d.next++
	if img.Empty() {
		return false
	}
	img.CopyTo(dst)
	return true
}

// FPS implements FrameSource.
func (d *DirectorySource) FPS() float64 { return d.fps }

// Size implements FrameSource.
func (d *DirectorySource) Size() (int, int) { return d.width, d.height }

// Len returns the number of frames in the sequence.
func (d *DirectorySource) Len() int { return len(d.files) }

// Close implements FrameSource.
func (d *DirectorySource) Close() error { return nil }
