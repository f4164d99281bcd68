package overlay

import (
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	"github.com/banshee-data/pitch.report/internal/fsutil"
)

// LoadPNGFrames decodes the PNG files at paths, in order.
func LoadPNGFrames(fs fsutil.FileSystem, paths []string) ([]image.Image, error) {
	frames := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		f, err := fs.Open(p)
		if err != nil {
			return nil, fmt.Errorf("failed to open frame %s: %w", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode frame %s: %w", p, err)
		}
		frames = append(frames, img)
	}
	return frames, nil
}

// FrameName returns the file name used for frame idx.
func FrameName(idx int) string {
	return fmt.Sprintf("frame_%05d.png", idx)
}

// SavePNGFrames writes frames into dir as frame_00000.png, frame_00001.png,
// ... and returns the written paths.
func SavePNGFrames(fs fsutil.FileSystem, dir string, frames []*image.RGBA) ([]string, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame dir: %w", err)
	}
	paths := make([]string, 0, len(frames))
	for i, frame := range frames {
		p := filepath.Join(dir, FrameName(i))
		w, err := fs.Create(p)
		if err != nil {
			return paths, fmt.Errorf("failed to create frame %s: %w", p, err)
		}
		if err := png.Encode(w, frame); err != nil {
			w.Close()
			return paths, fmt.Errorf("failed to encode frame %s: %w", p, err)
		}
		if err := w.Close(); err != nil {
			return paths, fmt.Errorf("failed to close frame %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
