package images

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-linecounter/controller"
)

var basketArea = controller.DefaultThresholds().BasketArea

// grayFrame returns a flat 3-channel frame of the given intensity.
func grayFrame(rows, cols int, v float64) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), rows, cols, gocv.MatTypeCV8UC3)
}

// blankMask returns a single-channel all-zero mask.
func blankMask(rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV8U)
}

// fill paints r with a solid intensity.
func fill(m *gocv.Mat, r image.Rectangle, v uint8) {
	gocv.Rectangle(m, r, color.RGBA{R: v, G: v, B: v, A: 0}, -1)
}

func TestRegionFits(t *testing.T) {
	tests := []struct {
		name     string
		r        image.Rectangle
		expected bool
	}{
		{name: "inside", r: image.Rect(10, 10, 100, 100), expected: true},
		{name: "touches bottom right corner", r: image.Rect(0, 380, 640, 480), expected: true},
		{name: "past bottom edge", r: image.Rect(0, 400, 640, 500), expected: false},
		{name: "past right edge", r: image.Rect(600, 0, 641, 10), expected: false},
		{name: "negative origin", r: image.Rect(-1, 0, 10, 10), expected: false},
		{name: "zero area", r: image.Rect(10, 10, 10, 50), expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RegionFits(tt.r, 640, 480))
		})
	}
}

func TestExtractRegion(t *testing.T) {
	frame := grayFrame(480, 640, 50)
	defer frame.Close()

	roi, ok := ExtractRegion(frame, image.Rect(0, 380, 640, 480))
	require.True(t, ok)
	defer roi.Close()
	assert.Equal(t, 100, roi.Rows())
	assert.Equal(t, 640, roi.Cols())

	_, ok = ExtractRegion(frame, image.Rect(0, 430, 640, 530))
	assert.False(t, ok, "region reaching below the frame is out of bounds")

	empty := gocv.NewMat()
	defer empty.Close()
	_, ok = ExtractRegion(empty, image.Rect(0, 0, 10, 10))
	assert.False(t, ok, "empty frame has no regions")
}

func TestDetectArea(t *testing.T) {
	mask := blankMask(100, 100)
	defer mask.Close()
	// 40x40 pixels; the traced contour encloses 39*39 = 1521 square pixels.
	fill(&mask, image.Rect(10, 10, 50, 50), 255)

	tests := []struct {
		name     string
		min, max float64
		expected bool
	}{
		{name: "inside range", min: 1000, max: 10000, expected: true},
		{name: "below range", min: 1600, max: 10000, expected: false},
		{name: "above range", min: 100, max: 500, expected: false},
		{name: "empty range", min: 10000, max: 1000, expected: false},
		{name: "degenerate range", min: 1521, max: 1521, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectArea(mask, controller.AreaRange{Min: tt.min, Max: tt.max}.Contains))
		})
	}

	assert.False(t, DetectArea(mask, nil))
	assert.True(t, DetectArea(mask, func(area float64) bool { return area > 1500 }))

	areas := ContourAreas(mask)
	require.Len(t, areas, 1)
	assert.InDelta(t, 1521, areas[0], 1)
}

func TestDetectAreaIgnoresWeakForeground(t *testing.T) {
	mask := blankMask(100, 100)
	defer mask.Close()
	fill(&mask, image.Rect(10, 10, 50, 50), 150)

	assert.False(t, DetectArea(mask, basketArea.Contains))
	assert.Empty(t, ContourAreas(mask))
}

func TestForegroundSegmenter(t *testing.T) {
	seg := NewForegroundSegmenter(DefaultSegmenterConfig())
	defer seg.Close()

	background := grayFrame(100, 100, 100)
	defer background.Close()

	for i := 0; i < 30; i++ {
		mask, err := seg.Apply(background)
		require.NoError(t, err)
		assert.Equal(t, 100, mask.Rows())
		assert.Equal(t, 100, mask.Cols())
	}
	mask, err := seg.Apply(background)
	require.NoError(t, err)
	assert.Zero(t, gocv.CountNonZero(mask), "learned background must not be foreground")

	withObject := grayFrame(100, 100, 100)
	defer withObject.Close()
	fill(&withObject, image.Rect(30, 30, 70, 70), 255)

	mask, err = seg.Apply(withObject)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, gocv.CountNonZero(mask), 1000)
	assert.True(t, DetectArea(mask, basketArea.Contains))
	assert.Equal(t, int64(32), seg.Frames())

	seg.Reset()
	assert.Equal(t, int64(0), seg.Frames())
}

func TestForegroundSegmenterRejectsEmptyInput(t *testing.T) {
	seg := NewForegroundSegmenter(DefaultSegmenterConfig())
	defer seg.Close()

	empty := gocv.NewMat()
	defer empty.Close()
	_, err := seg.Apply(empty)
	assert.Error(t, err)
	assert.Equal(t, int64(0), seg.Frames())
}
