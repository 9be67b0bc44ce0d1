package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats themes as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes rows as YAML.
func (f *YAMLFormatter) Format(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rows); err != nil {
		return err
	}
	return encoder.Close()
}
