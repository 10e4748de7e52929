package images

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ScaleToWidth resizes img to the given width, keeping the aspect ratio.
//
// Arguments:
//   - img: The image to resize.
//   - width: The target width. Zero or a width equal to the source returns img unchanged.
//
// Returns:
//   - image.Image: The resized image.
func ScaleToWidth(img image.Image, width int) image.Image {
	if width <= 0 || width == img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}

// MatToImage converts a BGR Mat into a Go image scaled to width (see ScaleToWidth).
func MatToImage(mat gocv.Mat, width int) (image.Image, error) {
	if mat.Empty() {
		return nil, errors.New("empty mat")
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "convert mat")
	}
	return ScaleToWidth(img, width), nil
}
