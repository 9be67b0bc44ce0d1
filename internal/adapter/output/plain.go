package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats themes as plain text.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes rows as plain text, marking the active theme with '*'.
func (f *PlainFormatter) Format(w io.Writer, rows []Row) error {
	for i := range rows {
		if err := f.formatRow(w, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatRow(w io.Writer, r *Row) error {
	if f.template != nil {
		if err := f.template.Execute(w, r); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if r.Active {
		sb.WriteString("* ")
	} else {
		sb.WriteString("  ")
	}

	if f.opts.ShowIndex {
		sb.WriteString(fmt.Sprintf("[%d] ", r.Index))
	}

	sb.WriteString(r.Theme.Name)

	var meta []string
	if n := len(r.Backgrounds); n > 0 {
		meta = append(meta, fmt.Sprintf("%d backgrounds", n))
	}
	if f.opts.ShowSize && r.Theme.Size > 0 {
		meta = append(meta, humanize.Bytes(uint64(r.Theme.Size)))
	}
	if f.opts.ShowTime && !r.Theme.ModTime.IsZero() {
		meta = append(meta, humanize.Time(r.Theme.ModTime))
	}
	if len(meta) > 0 {
		sb.WriteString(" (" + strings.Join(meta, ", ") + ")")
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"bytes": func(n int64) string {
			if n < 0 {
				n = 0
			}
			return humanize.Bytes(uint64(n))
		},
		"reltime": func(t time.Time) string {
			if t.IsZero() {
				return "unknown"
			}
			return humanize.Time(t)
		},
		"upper": strings.ToUpper,
	}
}
