// Package output writes sweep artifacts to disk: PNG images plus a text
// sidecar carrying the generation caption.
package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"go_sweepgrid/sweep"
)

// DiskSaver persists images under a directory, one PNG per artifact.
type DiskSaver struct {
	// WriteCaptions writes a .txt sidecar with the caption next to each
	// PNG, so generation parameters survive alongside the image.
	WriteCaptions bool
	// DirMode and FileMode set permissions on created paths.
	DirMode  os.FileMode
	FileMode os.FileMode
}

// NewDiskSaver returns a saver with caption sidecars enabled.
func NewDiskSaver() *DiskSaver {
	return &DiskSaver{
		WriteCaptions: true,
		DirMode:       0o755,
		FileMode:      0o644,
	}
}

// Save writes img to dir/name.png, creating the directory if needed, and
// returns the path written. name is sanitized so axis values containing
// path separators cannot escape the output directory.
func (s *DiskSaver) Save(img image.Image, dir, name string, meta sweep.SaveMeta) (string, error) {
	if img == nil {
		return "", fmt.Errorf("output: nil image for %q", name)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, s.dirMode()); err != nil {
		return "", fmt.Errorf("output: failed to create directory: %w", err)
	}

	path := filepath.Join(dir, Sanitize(name)+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("output: failed to create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("output: failed to encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("output: failed to close file: %w", err)
	}

	if s.WriteCaptions && meta.Caption != "" {
		sidecar := strings.TrimSuffix(path, ".png") + ".txt"
		if err := os.WriteFile(sidecar, []byte(meta.Caption+"\n"), s.fileMode()); err != nil {
			return "", fmt.Errorf("output: failed to write caption: %w", err)
		}
	}
	return path, nil
}

func (s *DiskSaver) dirMode() os.FileMode {
	if s.DirMode == 0 {
		return 0o755
	}
	return s.DirMode
}

func (s *DiskSaver) fileMode() os.FileMode {
	if s.FileMode == 0 {
		return 0o644
	}
	return s.FileMode
}

// Sanitize replaces filesystem-hostile characters in an artifact name.
// This is a pure function with no side effects.
func Sanitize(name string) string {
	if name == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

var _ sweep.Saver = (*DiskSaver)(nil)
