// Package images - Region-of-interest extraction from full video frames.
package images

import (
	"image"

	"gocv.io/x/gocv"
)

// RegionFits reports whether r lies inside a frame of the given size.
//
// Rectangles whose bottom or right edge reaches past the frame, whose origin is
// negative, or which cover no pixels do not fit.
func RegionFits(r image.Rectangle, width, height int) bool {
	if r.Empty() || r.Min.X < 0 || r.Min.Y < 0 {
		return false
	}
	return r.Max.Y <= height && r.Max.X <= width
}

// ExtractRegion returns the part of frame covered by r.
//
// The returned Mat shares pixel memory with frame and must be closed by the caller.
// When r does not fit the frame, ok is false and no Mat is allocated; callers treat
// that as "no detection this frame".
//
// Arguments:
//   - frame: The full video frame.
//   - r: The region in frame pixel coordinates.
//
// Returns:
//   - gocv.Mat: A view of the region, valid only when ok is true.
//   - bool: false when the region is out of bounds.
//
// @example
// roi, ok := ExtractRegion(frame, image.Rect(0, 380, 640, 480))
//
//	if ok {
//	    defer roi.Close()
//	}
func ExtractRegion(frame gocv.Mat, r image.Rectangle) (gocv.Mat, bool) {
	if frame.Empty() || !RegionFits(r, frame.Cols(), frame.Rows()) {
		return gocv.Mat{}, false
	}
	return frame.Region(r), true
}
