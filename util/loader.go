package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FrameFile is one image of a recorded frame sequence.
type FrameFile struct {
	// Path is the path to the image file.
	Path string
	// Frame is the frame number parsed from the file name.
	Frame int
}

// ListFrameFiles lists the frame images of a directory, ordered by frame number.
//
// Files must be named "frame-<n>.<ext>" with ext one of jpg, jpeg, png or bmp. Other
// files and sub-directories are ignored.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []FrameFile: The frame images, lowest frame number first.
// - error: Error if the directory cannot be read or a frame number cannot be parsed.
func ListFrameFiles(dir string) ([]FrameFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var frames []FrameFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		switch strings.ToLower(ext) {
		case ".jpg", ".jpeg", ".png", ".bmp":
			if !strings.HasPrefix(name, "frame-") {
				continue
			}
			frame, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "frame-"), ext))
			if err != nil {
				return nil, err
			}
			frames = append(frames, FrameFile{
				Path:  filepath.Join(dir, name),
				Frame: frame,
			})
		}
	}

	sort.Slice(frames, func(i, j int) bool {
		return frames[i].Frame < frames[j].Frame
	})

	return frames, nil
}
