// Package images - Overlay drawing helpers for annotated preview frames.
package images

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// RegionThickness is the outline width of drawn regions.
const RegionThickness = 2

// DrawRegion outlines r on mat in the given color.
func DrawRegion(mat *gocv.Mat, r image.Rectangle, c color.RGBA) {
	if mat == nil {
		return
	}
	gocv.Rectangle(mat, r, c, RegionThickness)
}

// DrawLabel writes text with its baseline at (x, y).
func DrawLabel(mat *gocv.Mat, text string, x, y int, c color.RGBA) {
	if mat == nil {
		return
	}
	gocv.PutText(mat, text, image.Pt(x, y), gocv.FontHersheySimplex, 1, c, 2)
}

// DrawLabels writes one label per line starting at (x, y), advancing by lineHeight.
func DrawLabels(mat *gocv.Mat, labels []Label, x, y, lineHeight int) {
	for i, l := range labels {
		DrawLabel(mat, l.Text, x, y+i*lineHeight, l.Color)
	}
}

// Label is a line of overlay text.
type Label struct {
	Text  string
	Color color.RGBA
}
