package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/tui"
)

var tuiOpts struct {
	noWatch bool
	confirm bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive theme browser",
	Long: `Launch the interactive terminal theme browser.

The preview is drawn with half-block characters, two pixels per cell.
Every move is written to the rEFInd config at once unless ui.apply is
"confirm" (or --confirm is given), in which case enter applies.

Key bindings:
  ←/→, h/l    Previous/next theme
  ↑/↓, k/j    Next/previous background
  enter       Apply (confirm mode)
  del, x      Delete theme (asks first)
  /           Search by name
  r           Rescan the themes folder
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Do not watch the themes folder for changes")
	tuiCmd.Flags().BoolVar(&tuiOpts.confirm, "confirm", false,
		"Preview on navigation, apply with enter")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()
	if tuiOpts.confirm {
		c.UI.Apply = config.ApplyOnConfirm
	}

	// Elevation replaces the process, so it must happen before the alt screen.
	ensureWritable(c.Refind.ConfigFile)

	restore := tui.RedirectLogs(logLevel)
	defer restore()

	ctrl, err := newController()
	if err != nil {
		return err
	}

	return tui.Run(tui.RunOptions{
		Controller: ctrl,
		Watch:      !tuiOpts.noWatch,
	})
}
