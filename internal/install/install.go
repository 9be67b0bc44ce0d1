package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrNestedTarget is returned when the destination lies inside the source
// or the other way round.
var ErrNestedTarget = errors.New("source and destination overlap")

// Result summarises a mirror run.
type Result struct {
	Removed int
	Copied  int
	Failed  int
}

// Mirror replaces the contents of dst with the contents of src.
// dst is created when missing. Failures on single entries are logged and
// collected; the run carries on with the remaining entries.
func Mirror(src, dst string) (Result, error) {
	var res Result

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return res, err
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return res, err
	}
	if within(srcAbs, dstAbs) || within(dstAbs, srcAbs) {
		return res, fmt.Errorf("%w: %s and %s", ErrNestedTarget, src, dst)
	}

	info, err := os.Stat(srcAbs)
	if err != nil {
		return res, fmt.Errorf("stat theme: %w", err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("%s is not a directory", src)
	}

	if err := os.MkdirAll(dstAbs, 0755); err != nil {
		return res, fmt.Errorf("create theme dir: %w", err)
	}

	var errs []error

	old, err := os.ReadDir(dstAbs)
	if err != nil {
		return res, fmt.Errorf("read theme dir: %w", err)
	}
	for _, e := range old {
		p := filepath.Join(dstAbs, e.Name())
		if err := os.RemoveAll(p); err != nil {
			slog.Warn("failed to remove old theme file", "path", p, "error", err)
			errs = append(errs, err)
			res.Failed++
			continue
		}
		res.Removed++
	}

	entries, err := os.ReadDir(srcAbs)
	if err != nil {
		return res, fmt.Errorf("read theme: %w", err)
	}
	for _, e := range entries {
		from := filepath.Join(srcAbs, e.Name())
		to := filepath.Join(dstAbs, e.Name())
		if err := copyTree(from, to); err != nil {
			slog.Warn("failed to copy theme file", "from", from, "to", to, "error", err)
			errs = append(errs, err)
			res.Failed++
			continue
		}
		res.Copied++
	}

	slog.Info("theme mirrored", "from", srcAbs, "to", dstAbs,
		"removed", res.Removed, "copied", res.Copied, "failed", res.Failed)
	return res, errors.Join(errs...)
}

func within(parent, child string) bool {
	if parent == child {
		return true
	}
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// copyTree copies a file or directory. Symlinks are followed because the
// ESP is usually FAT and cannot hold them.
func copyTree(from, to string) error {
	from, err := filepath.EvalSymlinks(from)
	if err != nil {
		return err
	}
	info, err := os.Stat(from)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(from, to, info.Mode().Perm())
	}

	return filepath.WalkDir(from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(from, path)
		if err != nil {
			return err
		}
		target := filepath.Join(to, rel)

		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(from, to string, mode fs.FileMode) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
