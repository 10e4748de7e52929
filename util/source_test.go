package util

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 90, G: 90, B: 90, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func frameDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"frame-10.png", "frame-2.png", "frame-1.png", "still.png"} {
		writePNG(t, filepath.Join(dir, name), 64, 48)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "frame-99.png"), 0o755))
	return dir
}

func TestDirectorySource(t *testing.T) {
	src, err := OpenDirectory(frameDir(t), 12.5)
	require.NoError(t, err)
	defer src.Close()

	var _ FrameSource = src
	w, h := src.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
	assert.Equal(t, 12.5, src.FPS())
	assert.Equal(t, 3, src.Len())

	frame := gocv.NewMat()
	defer frame.Close()

	read := 0
	for src.Next(&frame) {
		read++
		assert.Equal(t, 48, frame.Rows())
		assert.Equal(t, 64, frame.Cols())
	}
	assert.Equal(t, 3, read)
	assert.False(t, src.Next(&frame), "exhausted source stays exhausted")
}

func TestOpenDirectoryWithoutFrames(t *testing.T) {
	_, err := OpenDirectory(t.TempDir(), 25)
	assert.Error(t, err)
}

func TestOpenVideoMissingFile(t *testing.T) {
	_, err := OpenVideo(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}

func TestResolveFPS(t *testing.T) {
	tests := []struct {
		name     string
		reported float64
		want     float64
		warned   bool
	}{
		{"reported rate", 29.97, 29.97, false},
		{"zero rate", 0, 30, true},
		{"negative rate", -1, 30, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			src := &DirectorySource{fps: tt.reported}

			assert.Equal(t, tt.want, ResolveFPS(src, 30, zerolog.New(&buf)))
			assert.Equal(t, tt.warned, strings.Contains(buf.String(), `"level":"warn"`))
		})
	}
}
