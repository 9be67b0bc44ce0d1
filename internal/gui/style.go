package gui

import (
	_ "embed"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/skinsel/internal/config"
)

//go:embed style.css
var defaultCSS string

// StylePath returns the user stylesheet appended after the default one.
func StylePath() string {
	return filepath.Join(filepath.Dir(config.ConfigPath()), "style.css")
}

// LoadStyle installs the default stylesheet plus the user override, if any,
// on the default display.
func LoadStyle(logger *slog.Logger) *gtk.CSSProvider {
	css := defaultCSS
	data, err := os.ReadFile(StylePath())
	switch {
	case err == nil:
		css += "\n" + string(data)
		logger.Debug("loaded user stylesheet", "path", StylePath())
	case !errors.Is(err, os.ErrNotExist):
		logger.Warn("failed to read user stylesheet", "path", StylePath(), "error", err)
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(css)

	display := gdk.DisplayGetDefault()
	if display == nil {
		logger.Warn("no display available, cannot apply stylesheet")
		return provider
	}
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	return provider
}
