package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/config"
	"github.com/jmylchreest/skinsel/internal/history"
)

var historyOpts struct {
	limit  int
	json   bool
	keep   int
	dryRun bool
}

// historyCmd represents the history command group.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage the apply history",
	Long: `Show the themes applied so far, newest first.

Use 'skinsel history prune' to trim the journal.
Use 'skinsel history restore <id>' to apply a previous selection again.`,
	RunE: historyListRun,
}

// historyPruneCmd trims the journal.
var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Keep only the most recent entries",
	Long: `Rewrite the history journal keeping only the N most recent entries
(default: history.keep from the config).

Examples:
  skinsel history prune --keep 50
  skinsel history prune --dry-run`,
	RunE: historyPruneRun,
}

// historyRestoreCmd re-applies an entry.
var historyRestoreCmd = &cobra.Command{
	Use:   "restore <id|index>",
	Short: "Apply a previous selection again",
	Long: `Apply the theme and background recorded in a history entry. The entry is
given by its ID or by its 1-based position in 'skinsel history' (1 is the
newest).`,
	Args: cobra.ExactArgs(1),
	RunE: historyRestoreRun,
}

func init() {
	historyCmd.AddCommand(historyPruneCmd)
	historyCmd.AddCommand(historyRestoreCmd)

	historyCmd.Flags().IntVarP(&historyOpts.limit, "limit", "n", 20,
		"Maximum number of entries to show (0=unlimited)")
	historyCmd.Flags().BoolVar(&historyOpts.json, "json", false,
		"Output as JSON lines")

	historyPruneCmd.Flags().IntVar(&historyOpts.keep, "keep", 0,
		"Keep only the N most recent entries (default: history.keep)")
	historyPruneCmd.Flags().BoolVar(&historyOpts.dryRun, "dry-run", false,
		"Show what would be removed without actually removing")

	rootCmd.AddCommand(historyCmd)
}

// loadHistory returns all entries, newest first.
func loadHistory() ([]history.Entry, error) {
	if _, err := os.Stat(cfg.HistoryPath()); os.IsNotExist(err) {
		return nil, nil
	}

	j, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, err
	}
	defer j.Close()

	entries, err := j.Load()
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

func historyListRun(cmd *cobra.Command, args []string) error {
	entries, err := loadHistory()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		if !historyOpts.json {
			fmt.Println("No themes applied yet")
		}
		return nil
	}

	if historyOpts.limit > 0 && len(entries) > historyOpts.limit {
		entries = entries[:historyOpts.limit]
	}

	if historyOpts.json {
		enc := json.NewEncoder(os.Stdout)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	for i, e := range entries {
		fmt.Printf("[%d] %s  %-16s %s\n", i+1, e.ID, e.RelativeTime(), describe(e))
	}
	return nil
}

func historyPruneRun(cmd *cobra.Command, args []string) error {
	keep := historyOpts.keep
	if keep == 0 {
		keep = cfg.History.Keep
	}
	if keep <= 0 {
		return fmt.Errorf("specify --keep or set history.keep")
	}

	entries, err := loadHistory()
	if err != nil {
		return err
	}
	if len(entries) <= keep {
		fmt.Println("Nothing to prune")
		return nil
	}

	removed := entries[keep:]
	if historyOpts.dryRun {
		fmt.Printf("Would remove %d entr%s:\n", len(removed), plural(len(removed)))
		for i, e := range removed {
			if i >= 10 {
				fmt.Printf("  ... and %d more\n", len(removed)-10)
				break
			}
			fmt.Printf("  - %s (%s)\n", describe(e), humanize.Time(e.Time()))
		}
		return nil
	}

	j, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Compact(keep); err != nil {
		return err
	}
	fmt.Printf("Removed %d entr%s\n", len(removed), plural(len(removed)))
	return nil
}

func historyRestoreRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := loadHistory()
	if err != nil {
		return err
	}
	e, ok := findEntry(entries, args[0])
	if !ok {
		return fmt.Errorf("history entry %q not found", args[0])
	}

	ensureWritable(cfg.Refind.ConfigFile)

	cfg.UI.Apply = config.ApplyOnConfirm
	ctrl, err := newController()
	if err != nil {
		return err
	}
	if err := ctrl.JumpTo(ctx, e.Theme); err != nil {
		return fmt.Errorf("cannot restore %s: %w", describe(e), err)
	}
	if e.Background != "" {
		if err := ctrl.SelectBackground(ctx, e.Background); err != nil {
			return fmt.Errorf("cannot restore %s: %w", describe(e), err)
		}
	}
	if err := ctrl.Apply(ctx); err != nil {
		return err
	}

	fmt.Printf("Applied %s\n", ctrl.Label())
	return nil
}

// findEntry looks an entry up by ID (case-insensitive) or by its 1-based
// position in entries.
func findEntry(entries []history.Entry, arg string) (history.Entry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.ID, arg) {
			return e, true
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(entries) {
		return entries[n-1], true
	}
	return history.Entry{}, false
}

func describe(e history.Entry) string {
	if e.Background == "" {
		return e.Theme
	}
	return e.Theme + " (" + e.Background + ")"
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
