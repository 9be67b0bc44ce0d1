package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// DmenuFormatter formats themes for dmenu/rofi/fuzzel, one per line.
// The theme name is always the last field so a picker's output can be fed
// back to "skinsel apply" after cutting on the separator.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) *DmenuFormatter {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes rows in dmenu format.
func (f *DmenuFormatter) Format(w io.Writer, rows []Row) error {
	for i := range rows {
		if _, err := fmt.Fprintln(w, f.formatLine(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(r *Row) string {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, r); err == nil {
			return buf.String()
		}
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	var parts []string
	if f.opts.ShowIndex {
		parts = append(parts, fmt.Sprintf("%d", r.Index))
	}
	if r.Active {
		parts = append(parts, "active")
	}
	parts = append(parts, r.Theme.Name)

	return strings.Join(parts, sep)
}
