// Package privilege re-executes the current process with elevated rights
// when the bootloader config cannot be written as the invoking user.
package privilege

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// ElevatedEnv is set in the environment of the re-executed process.
const ElevatedEnv = "SKINSEL_ELEVATED"

// ErrNotWritable is returned when the config stays unwritable and no
// elevation is possible.
var ErrNotWritable = errors.New("config file is not writable")

// preservedEnv lists variables the elevated process needs to find the
// user's config and reach the user's display and session bus.
var preservedEnv = []string{
	"XDG_CONFIG_HOME",
	"XDG_DATA_HOME",
	"XDG_CACHE_HOME",
	"XDG_RUNTIME_DIR",
	"DISPLAY",
	"WAYLAND_DISPLAY",
	"DBUS_SESSION_BUS_ADDRESS",
	"HOME",
	"TERM",
}

// Writable reports whether path can be written, or created when missing.
func Writable(path string) bool {
	if err := unix.Access(path, unix.W_OK); err == nil {
		return true
	} else if !errors.Is(err, unix.ENOENT) {
		return false
	}
	return unix.Access(filepath.Dir(path), unix.W_OK) == nil
}

// Command returns the argv that re-runs exe with args through tool.
func Command(tool, exe string, args []string, env func(string) string) ([]string, error) {
	var argv []string
	switch tool {
	case "sudo", "doas":
		argv = []string{tool}
		if tool == "sudo" {
			argv = append(argv, "--preserve-env="+strings.Join(preservedEnv, ","))
		}
		argv = append(argv, "env", ElevatedEnv+"=1")
	case "pkexec":
		// pkexec scrubs the environment; pass the session through env(1).
		argv = []string{"pkexec", "env", ElevatedEnv + "=1"}
		for _, name := range preservedEnv {
			if v := env(name); v != "" {
				argv = append(argv, name+"="+v)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported elevation tool %q", tool)
	}
	argv = append(argv, exe)
	return append(argv, args...), nil
}

// EnsureWritable returns nil when path is writable. Otherwise, when tool is
// set and the process has not been elevated already, it replaces the
// current process with an elevated copy and does not return on success.
func EnsureWritable(path, tool string, args []string) error {
	if Writable(path) {
		return nil
	}
	if os.Geteuid() == 0 || os.Getenv(ElevatedEnv) != "" || tool == "" {
		return fmt.Errorf("%w: %s", ErrNotWritable, path)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	argv, err := Command(tool, exe, args, os.Getenv)
	if err != nil {
		return err
	}
	toolPath, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("%w: %s (%s not found)", ErrNotWritable, path, tool)
	}

	slog.Info("config not writable, re-executing with elevated rights", "path", path, "tool", tool)
	if err := unix.Exec(toolPath, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", tool, err)
	}
	return nil
}
