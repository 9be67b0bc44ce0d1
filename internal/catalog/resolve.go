package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
)

// GenericBackgroundName is the preview file looked up inside a theme folder.
const GenericBackgroundName = "background.png"

// Target describes the theme whose preview image is being resolved.
type Target struct {
	Theme           string
	ThemeDir        string
	Backgrounds     []string
	BackgroundIndex int
}

// Resolver is one strategy for picking a preview image.
type Resolver interface {
	// Name identifies the strategy in logs.
	Name() string
	// Resolve returns the image path, or false when this strategy has nothing.
	Resolve(t Target) (string, bool)
}

// Resolution is the outcome of running a Chain.
type Resolution struct {
	Path     string
	Strategy string
}

// Chain evaluates resolvers in order; the first hit wins.
type Chain []Resolver

// Resolve runs the chain. A chain ending in a FallbackResolver never misses;
// without one an empty Resolution is returned when every strategy misses.
func (c Chain) Resolve(t Target) Resolution {
	for _, r := range c {
		if path, ok := r.Resolve(t); ok {
			return Resolution{Path: path, Strategy: r.Name()}
		}
		slog.Debug("preview asset missing", "theme", t.Theme, "strategy", r.Name())
	}
	return Resolution{}
}

// NewChain builds the standard resolution order: background set, screenshot,
// generic background, fallback image.
func NewChain(samplesDir, errorImage, cacheDir string) Chain {
	return Chain{
		BackgroundSetResolver{},
		ScreenshotResolver{SamplesDir: samplesDir},
		GenericBackgroundResolver{},
		&FallbackResolver{Path: errorImage, CacheDir: cacheDir},
	}
}

// BackgroundSetResolver picks the active image of the theme's background set.
type BackgroundSetResolver struct{}

func (BackgroundSetResolver) Name() string { return "backgrounds" }

func (BackgroundSetResolver) Resolve(t Target) (string, bool) {
	if len(t.Backgrounds) == 0 {
		return "", false
	}
	i := t.BackgroundIndex
	if i < 0 || i >= len(t.Backgrounds) {
		i = 0
	}
	return t.Backgrounds[i], true
}

// ScreenshotResolver looks for <SamplesDir>/<theme>.png.
type ScreenshotResolver struct {
	SamplesDir string
}

func (ScreenshotResolver) Name() string { return "screenshot" }

func (r ScreenshotResolver) Resolve(t Target) (string, bool) {
	if r.SamplesDir == "" || t.Theme == "" {
		return "", false
	}
	path := filepath.Join(r.SamplesDir, t.Theme+".png")
	return path, fileExists(path)
}

// GenericBackgroundResolver looks for background.png inside the theme folder.
type GenericBackgroundResolver struct{}

func (GenericBackgroundResolver) Name() string { return "background" }

func (GenericBackgroundResolver) Resolve(t Target) (string, bool) {
	if t.ThemeDir == "" {
		return "", false
	}
	path := filepath.Join(t.ThemeDir, GenericBackgroundName)
	return path, fileExists(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
