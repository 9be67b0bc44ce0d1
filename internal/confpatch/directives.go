package confpatch

import (
	"path"
	"strings"

	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/selection"
)

// Directives describes the lines skinsel owns in the config file.
type Directives struct {
	IncludePrefix string // e.g. "include themes/"
	IncludeFile   string // e.g. "theme.conf"; empty includes the folder itself
	BannerPrefix  string // e.g. "banner themes/"
	BackgroundDir string // e.g. "bg"
}

// DefaultDirectives returns the stock rEFInd directive layout.
func DefaultDirectives() Directives {
	return Directives{
		IncludePrefix: config.DefaultIncludePrefix,
		IncludeFile:   config.DefaultIncludeFile,
		BannerPrefix:  config.DefaultBannerPrefix,
		BackgroundDir: config.DefaultBackgroundDir,
	}
}

// DirectivesFromConfig builds Directives from the application config.
func DirectivesFromConfig(cfg *config.Config) Directives {
	return Directives{
		IncludePrefix: cfg.Directives.IncludePrefix,
		IncludeFile:   cfg.Directives.IncludeFile,
		BannerPrefix:  cfg.Directives.BannerPrefix,
		BackgroundDir: cfg.Catalog.BackgroundDir,
	}
}

// IncludeLine returns the include directive for theme.
func (d Directives) IncludeLine(theme string) string {
	if d.IncludeFile == "" {
		return d.IncludePrefix + theme
	}
	return d.IncludePrefix + path.Join(theme, d.IncludeFile)
}

// BannerLine returns the banner directive for a background of theme.
// Paths use forward slashes regardless of the host.
func (d Directives) BannerLine(theme, background string) string {
	return d.BannerPrefix + path.Join(theme, d.BackgroundDir, background)
}

// Patch applies sel to lines: the include line is replaced or appended,
// the banner line is replaced or appended when a background is selected and
// removed otherwise.
func (d Directives) Patch(lines []string, sel selection.Selection) []string {
	out := PatchLines(lines, d.IncludePrefix, d.IncludeLine(sel.Theme))
	if sel.HasBackground() {
		return PatchLines(out, d.BannerPrefix, d.BannerLine(sel.Theme, sel.Background))
	}
	return RemoveLine(out, d.BannerPrefix)
}

// Parse reads the selection named by the first include and banner lines.
// Missing directives leave the matching fields empty.
func (d Directives) Parse(lines []string) selection.Selection {
	var sel selection.Selection

	if i := Find(lines, d.IncludePrefix); i >= 0 {
		rest := strings.TrimPrefix(strings.TrimSpace(lines[i]), d.IncludePrefix)
		if d.IncludeFile != "" {
			rest = strings.TrimSuffix(rest, "/"+d.IncludeFile)
		}
		sel.Theme = strings.TrimSuffix(rest, "/")
	}

	if i := Find(lines, d.BannerPrefix); i >= 0 {
		rest := strings.TrimPrefix(strings.TrimSpace(lines[i]), d.BannerPrefix)
		sel.Background = path.Base(rest)
		if sel.Theme == "" {
			if first, _, ok := strings.Cut(rest, "/"); ok {
				sel.Theme = first
			}
		}
	}

	return sel
}
