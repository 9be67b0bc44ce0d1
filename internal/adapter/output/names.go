package output

import (
	"fmt"
	"io"
)

// NamesFormatter outputs just the theme names, one per line.
// Useful for piping to other commands (e.g., skinsel apply).
type NamesFormatter struct{}

// NewNamesFormatter creates a new names formatter.
func NewNamesFormatter() *NamesFormatter {
	return &NamesFormatter{}
}

// Format writes theme names to the writer, one per line.
func (f *NamesFormatter) Format(w io.Writer, rows []Row) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.Theme.Name); err != nil {
			return err
		}
	}
	return nil
}
