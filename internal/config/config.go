// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const appName = "skinsel"

// Default configuration values.
const (
	DefaultRefindConfig  = "/boot/efi/EFI/refind/refind.conf"
	DefaultIncludePrefix = "include themes/"
	DefaultIncludeFile   = "theme.conf"
	DefaultBannerPrefix  = "banner themes/"
	DefaultBackgroundDir = "bg"
	DefaultSamplesDir    = "samples"
	DefaultErrorImage    = ".error.png"
	DefaultDebounce      = 200 * time.Millisecond
	DefaultElevate       = "sudo"
	DefaultWidth         = 800
	DefaultHeight        = 500
)

// Empty catalog policies.
const (
	OnEmptyExit       = "exit"
	OnEmptyEmptyState = "empty-state"
)

// Apply modes.
const (
	ApplyOnNavigate = "navigate"
	ApplyOnConfirm  = "confirm"
)

// Config represents the skinsel configuration.
type Config struct {
	Paths      PathsConfig      `toml:"paths"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Directives DirectivesConfig `toml:"directives"`
	Refind     RefindConfig     `toml:"refind"`
	UI         UIConfig         `toml:"ui"`
	History    HistoryConfig    `toml:"history"`
	Notify     NotifyConfig     `toml:"notify"`
	Privilege  PrivilegeConfig  `toml:"privilege"`
	GUI        GUIConfig        `toml:"gui"`
}

// PathsConfig holds the on-disk locations skinsel reads from.
type PathsConfig struct {
	ThemesRoot string `toml:"themes_root"` // One sub-folder per theme
	SamplesDir string `toml:"samples_dir"` // Screenshots named <theme>.png (default: <themes_root>/samples)
	ErrorImage string `toml:"error_image"` // Fallback preview (default: <samples_dir>/.error.png)
}

// CatalogConfig controls how themes are listed.
type CatalogConfig struct {
	Exclude       []string `toml:"exclude"`        // Case-insensitive substrings
	BackgroundDir string   `toml:"background_dir"` // Sub-folder of interchangeable banners
	ImagePatterns []string `toml:"image_patterns"` // Globs matched against background file names
	Sort          string   `toml:"sort"`           // name, modified
	Order         string   `toml:"order"`          // asc, desc
	OnEmpty       string   `toml:"on_empty"`       // exit, empty-state
}

// DirectivesConfig names the config lines skinsel owns.
type DirectivesConfig struct {
	IncludePrefix string `toml:"include_prefix"`
	IncludeFile   string `toml:"include_file"` // Appended after "<theme>/"; empty means the folder itself
	BannerPrefix  string `toml:"banner_prefix"`
}

// RefindConfig points at the bootloader files.
type RefindConfig struct {
	ConfigFile string `toml:"config_file"`
	ThemeDir   string `toml:"theme_dir"` // When set, the active theme is mirrored here
}

// UIConfig holds settings shared by the terminal and desktop front ends.
type UIConfig struct {
	Debounce Duration `toml:"debounce"`
	Apply    string   `toml:"apply"` // navigate, confirm
	ShowHelp bool     `toml:"show_help"`
}

// HistoryConfig controls the apply journal.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: $XDG_DATA_HOME/skinsel/history.jsonl
	Keep    int    `toml:"keep"` // Max entries kept on compaction (0 = unlimited)
}

// NotifyConfig controls desktop notifications after a theme is applied.
type NotifyConfig struct {
	Enabled bool     `toml:"enabled"`
	Timeout Duration `toml:"timeout"` // 0 = server default
}

// PrivilegeConfig controls re-execution with elevated rights.
type PrivilegeConfig struct {
	Elevate string `toml:"elevate"` // sudo, pkexec, or empty to never elevate
}

// GUIConfig holds desktop window settings.
type GUIConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			ThemesRoot: filepath.Join(DataPath(), "themes"),
		},
		Catalog: CatalogConfig{
			Exclude:       []string{"default", "samples", "bg"},
			BackgroundDir: DefaultBackgroundDir,
			ImagePatterns: []string{"*.{png,PNG,jpg,jpeg,JPG,bmp,BMP,webp}"},
			Sort:          "name",
			Order:         "asc",
			OnEmpty:       OnEmptyExit,
		},
		Directives: DirectivesConfig{
			IncludePrefix: DefaultIncludePrefix,
			IncludeFile:   DefaultIncludeFile,
			BannerPrefix:  DefaultBannerPrefix,
		},
		Refind: RefindConfig{
			ConfigFile: DefaultRefindConfig,
		},
		UI: UIConfig{
			Debounce: Duration(DefaultDebounce),
			Apply:    ApplyOnNavigate,
			ShowHelp: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    500,
		},
		Notify: NotifyConfig{
			Enabled: false,
		},
		Privilege: PrivilegeConfig{
			Elevate: DefaultElevate,
		},
		GUI: GUIConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName)
}

// CachePath returns the path to the cache directory.
// Uses XDG_CACHE_HOME if set, otherwise ~/.cache.
func CachePath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, appName)
}

// HistoryPath returns the path to the apply history JSONL file.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(DataPath(), "history.jsonl")
}

// LogPath returns the file the TUI logs to while it owns the terminal.
func LogPath() string {
	return filepath.Join(CachePath(), appName+".log")
}

// SamplesDir returns the screenshot directory, defaulting under the themes root.
func (c *Config) SamplesDir() string {
	if c.Paths.SamplesDir != "" {
		return c.Paths.SamplesDir
	}
	return filepath.Join(c.Paths.ThemesRoot, DefaultSamplesDir)
}

// ErrorImage returns the configured fallback preview image path.
func (c *Config) ErrorImage() string {
	if c.Paths.ErrorImage != "" {
		return c.Paths.ErrorImage
	}
	return filepath.Join(c.SamplesDir(), DefaultErrorImage)
}

// DebounceInterval returns the UI debounce duration.
// Negative values fall back to the default.
func (c *Config) DebounceInterval() time.Duration {
	d := c.UI.Debounce.Duration()
	if d < 0 {
		return DefaultDebounce
	}
	return d
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) expandPaths() {
	c.Paths.ThemesRoot = expandPath(c.Paths.ThemesRoot)
	c.Paths.SamplesDir = expandPath(c.Paths.SamplesDir)
	c.Paths.ErrorImage = expandPath(c.Paths.ErrorImage)
	c.Refind.ConfigFile = expandPath(c.Refind.ConfigFile)
	c.Refind.ThemeDir = expandPath(c.Refind.ThemeDir)
	c.History.Path = expandPath(c.History.Path)
}

// Validate checks enumerated and required fields.
func (c *Config) Validate() error {
	if c.Paths.ThemesRoot == "" {
		return errors.New("paths.themes_root must be set")
	}
	if c.Refind.ConfigFile == "" {
		return errors.New("refind.config_file must be set")
	}
	if c.Directives.IncludePrefix == "" {
		return errors.New("directives.include_prefix must be set")
	}
	if c.Directives.BannerPrefix == "" {
		return errors.New("directives.banner_prefix must be set")
	}
	if c.Directives.IncludePrefix == c.Directives.BannerPrefix {
		return errors.New("directives.include_prefix and directives.banner_prefix must differ")
	}
	switch c.Catalog.Sort {
	case "", "name", "modified":
	default:
		return fmt.Errorf("catalog.sort: unknown field %q", c.Catalog.Sort)
	}
	switch c.Catalog.Order {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("catalog.order: unknown order %q", c.Catalog.Order)
	}
	switch c.Catalog.OnEmpty {
	case "", OnEmptyExit, OnEmptyEmptyState:
	default:
		return fmt.Errorf("catalog.on_empty: unknown policy %q", c.Catalog.OnEmpty)
	}
	switch c.UI.Apply {
	case "", ApplyOnNavigate, ApplyOnConfirm:
	default:
		return fmt.Errorf("ui.apply: unknown mode %q", c.UI.Apply)
	}
	if c.UI.Debounce < 0 {
		return errors.New("ui.debounce must not be negative")
	}
	switch c.Privilege.Elevate {
	case "", "sudo", "pkexec", "doas":
	default:
		return fmt.Errorf("privilege.elevate: unsupported tool %q", c.Privilege.Elevate)
	}
	return nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func EnsureCacheDir() error {
	path := CachePath()
	if path == "" {
		return errors.New("unable to determine cache directory")
	}
	return os.MkdirAll(path, 0755)
}
