// Package output provides output formatters for theme listings.
package output

import (
	"io"

	"github.com/jmylchreest/skinsel/internal/catalog"
)

// Row is one theme in a listing.
type Row struct {
	Index       int           `json:"index" yaml:"index"` // 1-based
	Theme       catalog.Theme `json:"theme" yaml:"theme"`
	Active      bool          `json:"active" yaml:"active"`
	Backgrounds []string      `json:"backgrounds,omitempty" yaml:"backgrounds,omitempty"` // Base names
}

// Rows builds listing rows; active is the name of the applied theme.
func Rows(themes []catalog.Theme, active string, backgrounds func(catalog.Theme) []string) []Row {
	rows := make([]Row, len(themes))
	for i, t := range themes {
		rows[i] = Row{Index: i + 1, Theme: t, Active: t.Name == active}
		if backgrounds != nil {
			rows[i].Backgrounds = backgrounds(t)
		}
	}
	return rows
}

// Formatter formats theme rows for output.
type Formatter interface {
	// Format writes formatted rows to the writer.
	Format(w io.Writer, rows []Row) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatDmenu FormatType = "dmenu"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatNames FormatType = "names"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatNames:
		return NewNamesFormatter()
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for dmenu/plain format
	ShowIndex bool   // Show 1-based index prefix
	ShowTime  bool   // Show relative modification time
	ShowSize  bool   // Show folder size (requires catalog.FillSizes)
	Separator string // Field separator for dmenu format
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		ShowTime:  true,
		Separator: " | ",
	}
}
