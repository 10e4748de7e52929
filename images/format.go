package images

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
)

// ImageFormat represents supported image formats
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatWebP ImageFormat = "webp"
	FormatPNG  ImageFormat = "png"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".webp":
		return FormatWebP, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", errors.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

// Encode writes img to w in the given format. JPEG uses quality 90 and WebP is lossless.
func Encode(w io.Writer, img image.Image, format ImageFormat) error {
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatPNG:
		err = png.Encode(w, img)
	default:
		return errors.Errorf("unsupported image format: %s", format)
	}
	return errors.Wrapf(err, "encode %s", format)
}
