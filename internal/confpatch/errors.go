package confpatch

import (
	"errors"
	"fmt"
)

// ConfigIOError reports a failure to read or write the bootloader config.
type ConfigIOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigIOError) Unwrap() error {
	return e.Err
}

// IsConfigIOError checks if an error came from reading or writing the
// bootloader config.
func IsConfigIOError(err error) bool {
	var ce *ConfigIOError
	return errors.As(err, &ce)
}
