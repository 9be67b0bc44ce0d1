package catalog

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	placeholderName   = "placeholder.png"
	placeholderWidth  = 320
	placeholderHeight = 180
)

// FallbackResolver returns the configured error image, or a generated
// placeholder written under CacheDir when that image is absent. It always hits.
type FallbackResolver struct {
	Path     string
	CacheDir string

	once        sync.Once
	placeholder string
}

func (*FallbackResolver) Name() string { return "fallback" }

func (r *FallbackResolver) Resolve(t Target) (string, bool) {
	if r.Path != "" && fileExists(r.Path) {
		slog.Debug("no preview found, using fallback image", "theme", t.Theme, "path", r.Path)
		return r.Path, true
	}
	r.once.Do(func() {
		r.placeholder = writePlaceholder(r.CacheDir)
	})
	return r.placeholder, true
}

// writePlaceholder materialises the built-in placeholder and returns its path.
// It tries dir first and the system temp dir second.
func writePlaceholder(dir string) string {
	candidates := []string{dir, filepath.Join(os.TempDir(), "skinsel")}
	var path string
	for _, d := range candidates {
		if d == "" {
			continue
		}
		path = filepath.Join(d, placeholderName)
		if fileExists(path) {
			return path
		}
		if err := os.MkdirAll(d, 0755); err != nil {
			slog.Warn("failed to create placeholder dir", "path", d, "error", err)
			continue
		}
		if err := encodePlaceholder(path); err != nil {
			slog.Warn("failed to write placeholder image", "path", path, "error", err)
			continue
		}
		return path
	}
	return path
}

func encodePlaceholder(path string) error {
	img := Placeholder(placeholderWidth, placeholderHeight)

	tmp, err := os.CreateTemp(filepath.Dir(path), ".placeholder-*.png")
	if err != nil {
		return err
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Placeholder draws a dark frame crossed by two red diagonals.
func Placeholder(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	bg := color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	fg := color.NRGBA{R: 0xc0, G: 0x30, B: 0x30, A: 0xff}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	for x := 0; x < w; x++ {
		y := x * h / w
		img.SetNRGBA(x, y, fg)
		img.SetNRGBA(x, h-1-y, fg)
	}
	return img
}
