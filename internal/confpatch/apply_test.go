package confpatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/skinsel/internal/selection"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refind.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func readConfig(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApply_RewritesDirectives(t *testing.T) {
	path := writeConfig(t, "timeout 20\ninclude themes/old/theme.conf\n")

	err := Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha", Background: "one.png"})
	require.NoError(t, err)

	assert.Equal(t,
		"timeout 20\ninclude themes/alpha/theme.conf\nbanner themes/alpha/bg/one.png\n",
		readConfig(t, path))
}

func TestApply_Idempotent(t *testing.T) {
	path := writeConfig(t, "timeout 20\ninclude themes/old/theme.conf")
	sel := selection.Selection{Theme: "alpha", Background: "one.png"}

	require.NoError(t, Apply(path, DefaultDirectives(), sel))
	first := readConfig(t, path)
	require.NoError(t, Apply(path, DefaultDirectives(), sel))

	assert.Equal(t, first, readConfig(t, path))
}

func TestApply_OnlyFirstMatchRewritten(t *testing.T) {
	path := writeConfig(t, "include themes/a/theme.conf\ninclude themes/b/theme.conf\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "c"}))

	assert.Equal(t, "include themes/c/theme.conf\ninclude themes/b/theme.conf\n", readConfig(t, path))
}

func TestApply_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refind.conf")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))

	assert.Equal(t, "include themes/alpha/theme.conf\n", readConfig(t, path))
}

func TestApply_RemovesStaleBanner(t *testing.T) {
	path := writeConfig(t, "include themes/alpha/theme.conf\nbanner themes/alpha/bg/one.png\ntimeout 5\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "beta"}))

	assert.Equal(t, "include themes/beta/theme.conf\ntimeout 5\n", readConfig(t, path))
}

func TestApply_PreservesCRLF(t *testing.T) {
	path := writeConfig(t, "timeout 20\r\ninclude themes/old/theme.conf\r\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))

	assert.Equal(t, "timeout 20\r\ninclude themes/alpha/theme.conf\r\n", readConfig(t, path))
}

func TestApply_MixedLineEndingsKeepOtherLines(t *testing.T) {
	path := writeConfig(t, "timeout 5\r\ninclude themes/old/theme.conf\nscanfor manual,external\nmenuentry \"Linux\" {\n}\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))

	want := "timeout 5\r\ninclude themes/alpha/theme.conf\r\nscanfor manual,external\r\nmenuentry \"Linux\" {\r\n}\r\n"
	assert.Equal(t, want, readConfig(t, path))

	// Once normalised, a second apply is a no-op.
	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))
	assert.Equal(t, want, readConfig(t, path))
}

func TestApply_KeepsMode(t *testing.T) {
	path := writeConfig(t, "timeout 20\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestApply_LeavesNoTempFiles(t *testing.T) {
	path := writeConfig(t, "timeout 20\n")

	require.NoError(t, Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApply_MissingDirectoryIsConfigIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "refind.conf")

	err := Apply(path, DefaultDirectives(), selection.Selection{Theme: "alpha"})

	require.Error(t, err)
	assert.True(t, IsConfigIOError(err))
	var ce *ConfigIOError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "write", ce.Op)
	assert.Equal(t, path, ce.Path)
}

func TestApply_UnreadablePathIsConfigIOError(t *testing.T) {
	dir := t.TempDir()

	err := Apply(dir, DefaultDirectives(), selection.Selection{Theme: "alpha"})

	var ce *ConfigIOError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "read", ce.Op)
}

func TestCurrent(t *testing.T) {
	path := writeConfig(t, "include themes/alpha/theme.conf\r\nbanner themes/alpha/bg/one.png\r\n")

	sel, err := Current(path, DefaultDirectives())
	require.NoError(t, err)
	assert.Equal(t, selection.Selection{Theme: "alpha", Background: "one.png"}, sel)

	sel, err = Current(filepath.Join(t.TempDir(), "missing.conf"), DefaultDirectives())
	require.NoError(t, err)
	assert.Equal(t, selection.Selection{}, sel)
}
