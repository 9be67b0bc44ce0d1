package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidThemeName is returned for names that would escape the themes root.
var ErrInvalidThemeName = errors.New("invalid theme name")

// DeletionError reports a failed theme removal.
type DeletionError struct {
	Theme string
	Path  string
	Err   error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete theme %q: %v", e.Theme, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}

// IsDeletionError checks if an error is a theme deletion failure.
func IsDeletionError(err error) bool {
	var de *DeletionError
	return errors.As(err, &de)
}

// Delete removes the theme folder root/name recursively.
func Delete(root, name string) error {
	if err := validateName(name); err != nil {
		return &DeletionError{Theme: name, Err: err}
	}

	path := filepath.Join(root, name)
	info, err := os.Lstat(path)
	if err != nil {
		return &DeletionError{Theme: name, Path: path, Err: err}
	}
	if !info.IsDir() && info.Mode()&os.ModeSymlink == 0 {
		return &DeletionError{Theme: name, Path: path, Err: fmt.Errorf("%s is not a directory", path)}
	}

	if err := os.RemoveAll(path); err != nil {
		return &DeletionError{Theme: name, Path: path, Err: err}
	}

	slog.Info("deleted theme", "theme", name, "path", path)
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, name)
	}
	return nil
}
