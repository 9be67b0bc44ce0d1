package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/config"
)

var applyCmd = &cobra.Command{
	Use:   "apply <theme|index|-> [background]",
	Short: "Write a theme into the rEFInd config",
	Long: `Apply a theme without opening the browser.

The theme can be given by name, by its 1-based index from "skinsel list", or
as "-" to read a line from stdin (a dmenu line from "skinsel list --format
dmenu" works). The optional background is a file name from the theme's
background folder, with or without its extension.

Examples:
  skinsel apply regular-dark
  skinsel apply 3 two.png
  skinsel list --format dmenu | fuzzel -d | skinsel apply -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	arg := args[0]
	if arg == "-" {
		line, err := readLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		arg = line
	}
	arg = parseDmenuSelection(arg)

	ensureWritable(cfg.Refind.ConfigFile)

	// Moves below only stage the selection; Apply writes it once.
	cfg.UI.Apply = config.ApplyOnConfirm
	ctrl, err := newController()
	if err != nil {
		return err
	}

	themes := ctrl.State().Themes()
	i := catalog.Lookup(themes, arg)
	if i < 0 {
		return fmt.Errorf("theme %q not found", arg)
	}
	if err := ctrl.Select(ctx, i); err != nil {
		return err
	}

	if len(args) > 1 {
		bg, ok := matchBackground(ctrl.State().Backgrounds(), args[1])
		if !ok {
			return fmt.Errorf("theme %s has no background %q", themes[i].Name, args[1])
		}
		if err := ctrl.SelectBackground(ctx, bg); err != nil {
			return err
		}
	}

	if err := ctrl.Apply(ctx); err != nil {
		return err
	}

	fmt.Printf("Applied %s\n", ctrl.Label())
	return nil
}

// matchBackground finds the base name in backgrounds equal to name, or equal
// to name once extensions are ignored.
func matchBackground(backgrounds []string, name string) (string, bool) {
	for _, bg := range backgrounds {
		if filepath.Base(bg) == name {
			return filepath.Base(bg), true
		}
	}
	for _, bg := range backgrounds {
		base := filepath.Base(bg)
		if strings.EqualFold(strings.TrimSuffix(base, filepath.Ext(base)), name) {
			return base, true
		}
	}
	return "", false
}

// parseDmenuSelection extracts the theme from a picker's output.
// Input could be the full dmenu line "2 | active | regular-dark" or just a
// name or index. The name is the last field, so it wins over the index,
// which depends on the listing's sort order.
func parseDmenuSelection(selection string) string {
	selection = strings.TrimSpace(selection)
	if i := strings.LastIndex(selection, "|"); i >= 0 {
		return strings.TrimSpace(selection[i+1:])
	}
	return selection
}

func readLine(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return "", fmt.Errorf("no theme on stdin")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
