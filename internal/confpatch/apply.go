package confpatch

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmylchreest/skinsel/internal/selection"
)

// Apply writes sel into the config file at path.
// A missing file is created. The line ending of an existing file is kept
// and the file is replaced atomically. Applying the same selection twice
// leaves the file byte-identical.
func Apply(path string, d Directives, sel selection.Selection) error {
	data, mode, err := read(path)
	if err != nil {
		return err
	}

	lines, eol := splitLines(data)
	out := joinLines(d.Patch(lines, sel), eol)

	if bytes.Equal(out, data) {
		slog.Debug("config already up to date", "path", path, "theme", sel.Theme)
		return nil
	}

	if err := writeAtomic(path, out, mode); err != nil {
		return err
	}

	slog.Info("config patched", "path", path, "theme", sel.Theme, "background", sel.Background)
	return nil
}

// Current returns the selection recorded in the config file at path.
// A missing file yields an empty selection.
func Current(path string, d Directives) (selection.Selection, error) {
	data, _, err := read(path)
	if err != nil {
		return selection.Selection{}, err
	}
	lines, _ := splitLines(data)
	return d.Parse(lines), nil
}

func read(path string) ([]byte, fs.FileMode, error) {
	mode := fs.FileMode(0644)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mode, nil
		}
		return nil, mode, &ConfigIOError{Op: "read", Path: path, Err: err}
	}
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return data, mode, nil
}

// writeAtomic writes data to a temp file next to path and renames it over
// path.
func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	fail := func(err error) error {
		return &ConfigIOError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fail(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fail(err)
	}
	// FAT ESPs reject chmod; the rename still succeeds there.
	if err := os.Chmod(tmpName, mode); err != nil {
		slog.Debug("failed to set config mode", "path", tmpName, "error", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fail(err)
	}
	return nil
}
