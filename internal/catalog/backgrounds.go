package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultImagePatterns matches the image formats the presenter can decode.
var DefaultImagePatterns = []string{"*.{png,PNG,jpg,jpeg,JPG,bmp,BMP,webp}"}

// BackgroundDir returns the background sub-folder of a theme.
func BackgroundDir(themeDir, bgDir string) string {
	return filepath.Join(themeDir, bgDir)
}

// Backgrounds returns the sorted image paths inside the theme's background
// folder. It returns nil when the folder is missing or holds no images.
func Backgrounds(themeDir, bgDir string, patterns []string) []string {
	if bgDir == "" {
		return nil
	}
	if len(patterns) == 0 {
		patterns = DefaultImagePatterns
	}

	dir := BackgroundDir(themeDir, bgDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read background folder", "path", dir, "error", err)
		}
		return nil
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesAny(entry.Name(), patterns) {
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, name)
		if err != nil {
			slog.Debug("invalid image pattern", "pattern", p, "error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
