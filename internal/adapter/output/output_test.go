package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/skinsel/internal/catalog"
)

func testRows() []Row {
	now := time.Now()
	themes := []catalog.Theme{
		{Name: "alpha", Dir: "/themes/alpha", ModTime: now.Add(-5 * time.Minute), Size: 2048},
		{Name: "beta", Dir: "/themes/beta", ModTime: now.Add(-2 * time.Hour)},
	}
	return Rows(themes, "beta", func(t catalog.Theme) []string {
		if t.Name == "alpha" {
			return []string{"one.png", "two.png"}
		}
		return nil
	})
}

func TestRows(t *testing.T) {
	rows := testRows()

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.False(t, rows[0].Active)
	assert.Equal(t, []string{"one.png", "two.png"}, rows[0].Backgrounds)
	assert.Equal(t, 2, rows[1].Index)
	assert.True(t, rows[1].Active)
	assert.Nil(t, rows[1].Backgrounds)
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowSize = true
	err := NewPlainFormatter(opts).Format(&buf, testRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "  [1] alpha (2 backgrounds, 2.0 kB, 5 minutes ago)", lines[0])
	assert.Equal(t, "* [2] beta (2 hours ago)", lines[1])
}

func TestPlainFormatter_Minimal(t *testing.T) {
	var buf bytes.Buffer

	err := NewPlainFormatter(FormatterOptions{}).Format(&buf, testRows())
	require.NoError(t, err)

	assert.Equal(t, "  alpha (2 backgrounds)\n* beta\n", buf.String())
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}={{upper .Theme.Name}} {{bytes .Theme.Size}}"
	err := NewPlainFormatter(opts).Format(&buf, testRows())
	require.NoError(t, err)

	assert.Equal(t, "1=ALPHA 2.0 kB\n2=BETA 0 B\n", buf.String())
}

func TestDmenuFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewDmenuFormatter(DefaultFormatterOptions()).Format(&buf, testRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"1 | alpha", "2 | active | beta"}, lines)
}

func TestDmenuFormatter_NoIndex(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	opts.Separator = "\t"
	err := NewDmenuFormatter(opts).Format(&buf, testRows())
	require.NoError(t, err)

	assert.Equal(t, "alpha\nactive\tbeta\n", buf.String())
}

func TestDmenuFormatter_BadTemplateFallsBack(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Missing"
	err := NewDmenuFormatter(opts).Format(&buf, testRows()[:1])
	require.NoError(t, err)

	assert.Equal(t, "1 | alpha\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, testRows())
	require.NoError(t, err)

	var result []Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, "alpha", result[0].Theme.Name)
	assert.Equal(t, int64(2048), result[0].Theme.Size)
	assert.True(t, result[1].Active)
}

func TestJSONFormatter_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	err := NewYAMLFormatter(DefaultFormatterOptions()).Format(&buf, testRows())
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 2)
	assert.Equal(t, 1, result[0]["index"])
	assert.Equal(t, true, result[1]["active"])
	theme, ok := result[0]["theme"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alpha", theme["name"])
}

func TestNamesFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewNamesFormatter().Format(&buf, testRows()))
	assert.Equal(t, "alpha\nbeta\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()

	tests := []struct {
		format FormatType
		check  func(Formatter) bool
	}{
		{FormatDmenu, func(f Formatter) bool { _, ok := f.(*DmenuFormatter); return ok }},
		{FormatJSON, func(f Formatter) bool { _, ok := f.(*JSONFormatter); return ok }},
		{FormatYAML, func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
		{FormatNames, func(f Formatter) bool { _, ok := f.(*NamesFormatter); return ok }},
		{FormatPlain, func(f Formatter) bool { _, ok := f.(*PlainFormatter); return ok }},
		{"unknown", func(f Formatter) bool { _, ok := f.(*PlainFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.True(t, tt.check(NewFormatter(tt.format, opts)))
		})
	}
}
