package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrEmptyCatalog is returned when no themes remain after filtering.
var ErrEmptyCatalog = errors.New("no themes found")

// Theme is one theme folder under the themes root.
type Theme struct {
	Name    string    `json:"name" yaml:"name"`
	Dir     string    `json:"dir" yaml:"dir"`
	ModTime time.Time `json:"modified" yaml:"modified"`
	Size    int64     `json:"size,omitempty" yaml:"size,omitempty"` // Filled by FillSizes
}

// Options controls how the themes root is listed.
type Options struct {
	Exclude []string    // Case-insensitive substrings; matching folders are skipped
	Sort    SortOptions // Zero value sorts by name ascending
}

// List returns the themes under root.
// A missing root is created and then reported as empty.
func List(root string, opts Options) ([]Theme, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read themes root: %w", err)
		}
		slog.Info("themes directory does not exist, creating", "path", root)
		if err := os.MkdirAll(root, 0755); err != nil {
			return nil, fmt.Errorf("create themes root: %w", err)
		}
		return nil, ErrEmptyCatalog
	}

	var themes []Theme
	for _, entry := range entries {
		name := entry.Name()
		if !isThemeDir(root, entry) || Excluded(name, opts.Exclude) {
			continue
		}

		t := Theme{Name: name, Dir: filepath.Join(root, name)}
		if info, err := os.Stat(t.Dir); err == nil {
			t.ModTime = info.ModTime()
		}
		themes = append(themes, t)
	}

	if len(themes) == 0 {
		return nil, ErrEmptyCatalog
	}

	Sort(themes, opts.Sort)
	slog.Debug("listed themes", "root", root, "count", len(themes))
	return themes, nil
}

// isThemeDir reports whether entry is a directory, following symlinks.
func isThemeDir(root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	return err == nil && info.IsDir()
}

// Excluded reports whether name contains any of the denylist entries,
// ignoring case.
func Excluded(name string, denylist []string) bool {
	lower := strings.ToLower(name)
	for _, d := range denylist {
		if d == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

// Names returns the theme names in order.
func Names(themes []Theme) []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// DirSize returns the total size in bytes of the regular files under dir.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// FillSizes sets Size on every theme. Unreadable folders keep a zero size.
func FillSizes(themes []Theme) {
	for i := range themes {
		size, err := DirSize(themes[i].Dir)
		if err != nil {
			slog.Debug("failed to size theme", "theme", themes[i].Name, "error", err)
		}
		themes[i].Size = size
	}
}
