package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMirror_ReplacesContents(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "themes", "alpha")
	dst := filepath.Join(root, "refind", "theme")

	write(t, filepath.Join(src, "theme.conf"), "banner bg.png")
	write(t, filepath.Join(src, "icons", "os_linux.png"), "icon")
	write(t, filepath.Join(dst, "stale.conf"), "old")
	write(t, filepath.Join(dst, "old", "x.png"), "old")

	res, err := Mirror(src, dst)
	require.NoError(t, err)

	assert.Equal(t, Result{Removed: 2, Copied: 2}, res)
	assert.Equal(t, "banner bg.png", read(t, filepath.Join(dst, "theme.conf")))
	assert.Equal(t, "icon", read(t, filepath.Join(dst, "icons", "os_linux.png")))
	assert.NoFileExists(t, filepath.Join(dst, "stale.conf"))
	assert.NoDirExists(t, filepath.Join(dst, "old"))
	assert.FileExists(t, filepath.Join(src, "theme.conf"), "source is untouched")
}

func TestMirror_CreatesDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "alpha")
	write(t, filepath.Join(src, "theme.conf"), "x")

	_, err := Mirror(src, filepath.Join(root, "new", "theme"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "new", "theme", "theme.conf"))
}

func TestMirror_KeepsFileMode(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "alpha")
	write(t, filepath.Join(src, "run.sh"), "#!/bin/sh")
	require.NoError(t, os.Chmod(filepath.Join(src, "run.sh"), 0755))

	_, err := Mirror(src, filepath.Join(root, "theme"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "theme", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestMirror_FollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "alpha")
	write(t, filepath.Join(root, "shared", "font.png"), "font")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "font.png"), filepath.Join(src, "font.png")))

	_, err := Mirror(src, filepath.Join(root, "theme"))
	require.NoError(t, err)

	info, err := os.Lstat(filepath.Join(root, "theme", "font.png"))
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestMirror_RejectsOverlap(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "alpha")
	require.NoError(t, os.MkdirAll(src, 0755))

	_, err := Mirror(src, filepath.Join(src, "theme"))
	assert.ErrorIs(t, err, ErrNestedTarget)

	_, err = Mirror(src, src)
	assert.ErrorIs(t, err, ErrNestedTarget)

	_, err = Mirror(src, root)
	assert.ErrorIs(t, err, ErrNestedTarget)
}

func TestMirror_MissingSource(t *testing.T) {
	root := t.TempDir()
	_, err := Mirror(filepath.Join(root, "ghost"), filepath.Join(root, "theme"))
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/a", "/a/b"))
	assert.True(t, within("/a", "/a"))
	assert.False(t, within("/a", "/ab"))
	assert.False(t, within("/a/b", "/a"))
	assert.False(t, within("/a", "/..a"))
}
