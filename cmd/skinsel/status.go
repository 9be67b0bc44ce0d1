package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/confpatch"
	"github.com/jmylchreest/skinsel/internal/history"
)

var statusOpts struct {
	json bool
}

// Status is the applied selection as reported by "skinsel status --json".
type Status struct {
	Theme      string `json:"theme"`
	Background string `json:"background,omitempty"`
	ConfigFile string `json:"config_file"`
	Installed  bool   `json:"installed"`            // Theme folder still exists
	AppliedAt  int64  `json:"applied_at,omitempty"` // From history, when recorded
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the theme written in the rEFInd config",
	Long: `Show the theme and background currently referenced by the rEFInd config,
whether that theme still exists under the themes root, and when it was
applied (when history is enabled).`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	sel, err := confpatch.Current(cfg.Refind.ConfigFile, confpatch.DirectivesFromConfig(cfg))
	if err != nil {
		return err
	}

	st := Status{
		Theme:      sel.Theme,
		Background: sel.Background,
		ConfigFile: cfg.Refind.ConfigFile,
	}

	if sel.Theme != "" {
		themes, err := catalog.List(cfg.Paths.ThemesRoot, listOptions())
		if err != nil {
			logger.Debug("failed to list themes", "error", err)
		}
		st.Installed = catalog.LookupByName(themes, sel.Theme) >= 0
	}

	if last, ok := lastApplied(); ok && last.Selection() == sel {
		st.AppliedAt = last.AppliedAt
	}

	if statusOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	if st.Theme == "" {
		fmt.Printf("No theme set in %s\n", st.ConfigFile)
		return nil
	}

	fmt.Printf("Theme:      %s\n", st.Theme)
	if st.Background != "" {
		fmt.Printf("Background: %s\n", st.Background)
	}
	fmt.Printf("Config:     %s\n", st.ConfigFile)
	if !st.Installed {
		fmt.Printf("Warning:    theme folder not found under %s\n", cfg.Paths.ThemesRoot)
	}
	if st.AppliedAt > 0 {
		fmt.Printf("Applied:    %s\n", time.Unix(st.AppliedAt, 0).Format(time.RFC1123))
	}
	return nil
}

// lastApplied returns the newest history entry, if history is enabled.
func lastApplied() (history.Entry, bool) {
	if !cfg.History.Enabled {
		return history.Entry{}, false
	}
	if _, err := os.Stat(cfg.HistoryPath()); err != nil {
		return history.Entry{}, false
	}

	j, err := history.Open(cfg.HistoryPath())
	if err != nil {
		logger.Debug("failed to open history", "error", err)
		return history.Entry{}, false
	}
	defer j.Close()

	last, ok, err := j.Last()
	if err != nil {
		logger.Debug("failed to read history", "error", err)
		return history.Entry{}, false
	}
	return last, ok
}
