// Package images - Contour-area presence test on foreground masks.
package images

import "gocv.io/x/gocv"

// MaskThreshold is the intensity a mask pixel must exceed to count as foreground when
// contours are extracted. It suppresses the soft edges of the subtractor output.
const MaskThreshold = 200

// AreaFilter accepts a contour area in square pixels.
type AreaFilter func(area float64) bool

// DetectArea reports whether at least one external contour of mask encloses an area
// accepted by filter.
//
// The mask is binarized at MaskThreshold first. Only outermost boundaries are used and
// the number of matching contours is not reported. An empty mask or a nil filter yields
// false.
//
// Arguments:
//   - mask: A single-channel 8-bit foreground mask.
//   - filter: The area test, usually a region's AreaRange.Contains.
//
// Returns:
//   - bool: true if any contour area is accepted.
func DetectArea(mask gocv.Mat, filter AreaFilter) bool {
	if filter == nil || mask.Empty() {
		return false
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(mask, &binary, MaskThreshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		if filter(gocv.ContourArea(contours.At(i))) {
			return true
		}
	}
	return false
}

// ContourAreas returns the enclosed area of every external contour of the binarized mask.
//
// It is the diagnostic counterpart of DetectArea, used to tune area ranges.
func ContourAreas(mask gocv.Mat) []float64 {
	if mask.Empty() {
		return nil
	}

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(mask, &binary, MaskThreshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	areas := make([]float64, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		areas = append(areas, gocv.ContourArea(contours.At(i)))
	}
	return areas
}
