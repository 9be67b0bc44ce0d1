package render

import (
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
)

// FrameCache stores letterboxed frames as PNG files so the desktop window
// can hand a path to GTK instead of re-scaling on every draw.
type FrameCache struct {
	dir string
}

// NewFrameCache returns a cache rooted at dir.
func NewFrameCache(dir string) *FrameCache {
	return &FrameCache{dir: filepath.Join(dir, "frames")}
}

// Dir returns the directory holding cached frames.
func (c *FrameCache) Dir() string {
	return c.dir
}

// Key identifies a frame of path at w x h. A changed source file changes
// the key through its modification time and size.
func Key(path string, info fs.FileInfo, w, h int) string {
	hasher := xxh3.New()
	fmt.Fprintf(hasher, "%s\x00%d\x00%d\x00%d\x00%d", path, info.ModTime().UnixNano(), info.Size(), w, h)
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// sourcePrefix names every frame rendered from path.
func sourcePrefix(path string) string {
	return fmt.Sprintf("%016x-", xxh3.HashString(path))
}

// Frame returns the path of a w x h letterboxed PNG of the image at path,
// rendering it on a cache miss. The cache keeps one frame per source image;
// rendering a new size or a changed source evicts the older frame.
func (c *FrameCache) Frame(path string, w, h int) (string, error) {
	if w <= 0 || h <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", w, h)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", &DecodeError{Path: path, Err: err}
	}

	prefix := sourcePrefix(path)
	out := filepath.Join(c.dir, prefix+Key(path, info, w, h)+".png")
	if _, err := os.Stat(out); err == nil {
		return out, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	img, err := Load(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("create frame cache: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".frame-*.png")
	if err != nil {
		return "", fmt.Errorf("create frame: %w", err)
	}
	if err := png.Encode(tmp, Letterbox(img, w, h)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write frame: %w", err)
	}
	if err := os.Rename(tmp.Name(), out); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write frame: %w", err)
	}

	c.evict(prefix, out)

	slog.Debug("rendered frame", "source", path, "width", w, "height", h, "frame", out)
	return out, nil
}

// evict removes frames with prefix other than keep.
func (c *FrameCache) evict(prefix, keep string) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		slog.Debug("failed to read frame cache", "dir", c.dir, "error", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || filepath.Join(c.dir, name) == keep {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("failed to evict frame", "frame", name, "error", err)
		}
	}
}

// Clear removes every cached frame.
func (c *FrameCache) Clear() error {
	return os.RemoveAll(c.dir)
}
