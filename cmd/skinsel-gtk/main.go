// Package main is the entry point for the skinsel desktop window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/skinsel/internal/app"
	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/gui"
	"github.com/jmylchreest/skinsel/internal/notify"
	"github.com/jmylchreest/skinsel/internal/privilege"
)

const appID = "io.github.jmylchreest.skinsel"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/skinsel/config.toml)")
	themesRoot := flag.String("themes", "", "Themes root folder (overrides paths.themes_root)")
	refindConf := flag.String("refind-config", "", "rEFInd config file to patch (overrides refind.config_file)")
	confirm := flag.Bool("confirm", false, "Preview on navigation, apply with Enter")
	noElevate := flag.Bool("no-elevate", false, "Never re-execute with sudo/pkexec/doas")
	noWatch := flag.Bool("no-watch", false, "Do not watch the themes folder for changes")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("skinsel-gtk version", version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *themesRoot != "" {
		cfg.Paths.ThemesRoot = *themesRoot
	}
	if *refindConf != "" {
		cfg.Refind.ConfigFile = *refindConf
	}
	if *noElevate {
		cfg.Privilege.Elevate = ""
	}
	if *confirm {
		cfg.UI.Apply = config.ApplyOnConfirm
	}

	// Elevation replaces the process, so it runs before GTK is initialised.
	if err := privilege.EnsureWritable(cfg.Refind.ConfigFile, cfg.Privilege.Elevate, os.Args[1:]); err != nil {
		if errors.Is(err, privilege.ErrNotWritable) {
			logger.Warn("rEFInd config is not writable; changes will fail", "path", cfg.Refind.ConfigFile)
		} else {
			logger.Warn("failed to elevate", "error", err)
		}
	}

	ctrl, err := newController(cfg, logger)
	if err != nil {
		logger.Error("failed to load themes", "root", cfg.Paths.ThemesRoot, "error", err)
		os.Exit(1)
	}

	run(ctrl, !*noWatch, logger)
}

func newController(cfg *config.Config, logger *slog.Logger) (*app.Controller, error) {
	opts := []app.Option{app.WithLogger(logger)}

	if cfg.Notify.Enabled {
		client, err := notify.Dial(cfg.Notify.Timeout.Duration(), logger)
		if err != nil {
			logger.Warn("desktop notifications disabled", "error", err)
		} else {
			opts = append(opts, app.WithNotifier(client))
		}
	}

	return app.New(cfg, opts...)
}

// run owns the GTK main loop until the window closes.
func run(ctrl *app.Controller, watch bool, logger *slog.Logger) {
	application := adw.NewApplication(appID, 0)

	var stop func()
	application.ConnectActivate(func() {
		gui.LoadStyle(logger)

		window := gui.NewWindow(&application.Application, ctrl, logger)
		window.Present()

		if !watch {
			return
		}
		watcher, err := ctrl.Watch()
		if err != nil {
			logger.Warn("failed to watch themes folder", "error", err)
			return
		}
		stop = func() { _ = watcher.Stop() }

		go func() {
			for range watcher.Changes() {
				glib.IdleAdd(window.Rescan)
			}
		}()
	})

	application.ConnectShutdown(func() {
		if stop != nil {
			stop()
		}
	})

	// GTK parses its own arguments; ours were consumed by flag.
	status := application.Run(os.Args[:1])
	os.Exit(status)
}
