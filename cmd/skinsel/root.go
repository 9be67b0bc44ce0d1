// Package main provides the CLI entrypoint for skinsel.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/app"
	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/notify"
	"github.com/jmylchreest/skinsel/internal/privilege"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		themesRoot string
		refindConf string
		noElevate  bool
	}
	logger   *slog.Logger
	logLevel slog.Level
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "skinsel",
	Short: "Boot theme selector for rEFInd",
	Long: `skinsel browses a folder of rEFInd themes, previews each one and writes
the chosen theme (and banner background) into the rEFInd config.

Running skinsel without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Flag overrides
		if globalOpts.themesRoot != "" {
			cfg.Paths.ThemesRoot = globalOpts.themesRoot
		}
		if globalOpts.refindConf != "" {
			cfg.Refind.ConfigFile = globalOpts.refindConf
		}
		if globalOpts.noElevate {
			cfg.Privilege.Elevate = ""
		}

		logger.Debug("config loaded",
			"themes_root", cfg.Paths.ThemesRoot,
			"refind_config", cfg.Refind.ConfigFile,
			"apply", cfg.UI.Apply)
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/skinsel/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.themesRoot, "themes", "",
		"Themes root folder (overrides paths.themes_root)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.refindConf, "refind-config", "",
		"rEFInd config file to patch (overrides refind.config_file)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.noElevate, "no-elevate", false,
		"Never re-execute with sudo/pkexec/doas")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	logLevel = slog.LevelWarn
	if globalOpts.verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// ensureWritable re-executes with elevated rights when path cannot be
// written. When that is impossible it warns and carries on; the write itself
// reports the failure.
func ensureWritable(path string) {
	err := privilege.EnsureWritable(path, cfg.Privilege.Elevate, os.Args[1:])
	if err == nil {
		return
	}
	if errors.Is(err, privilege.ErrNotWritable) {
		logger.Warn("path is not writable; changes will fail", "path", path)
		return
	}
	logger.Warn("failed to elevate", "error", err)
}

// newController builds the controller shared by the TUI and the write
// commands, wiring the desktop notifier when enabled.
func newController() (*app.Controller, error) {
	opts := []app.Option{app.WithLogger(slog.Default())}

	if cfg.Notify.Enabled {
		client, err := notify.Dial(cfg.Notify.Timeout.Duration(), slog.Default())
		if err != nil {
			logger.Warn("desktop notifications disabled", "error", err)
		} else {
			opts = append(opts, app.WithNotifier(client))
		}
	}

	return app.New(cfg, opts...)
}

// listOptions returns the catalog options from the config.
func listOptions() catalog.Options {
	return catalog.Options{
		Exclude: cfg.Catalog.Exclude,
		Sort: catalog.SortOptions{
			Field: catalog.ParseSortField(cfg.Catalog.Sort),
			Order: catalog.ParseSortOrder(cfg.Catalog.Order),
		},
	}
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
