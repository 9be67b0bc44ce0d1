package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/confpatch"
)

var deleteOpts struct {
	yes bool
}

var deleteCmd = &cobra.Command{
	Use:     "delete <theme|index>",
	Aliases: []string{"rm"},
	Short:   "Delete a theme folder",
	Long: `Delete a theme folder from the themes root, recursively.

You are asked to confirm unless --yes is given. The rEFInd config is not
changed; if the deleted theme is the applied one, apply another theme
afterwards.

Examples:
  skinsel delete old-theme
  skinsel delete 4 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteOpts.yes, "yes", "y", false,
		"Delete without asking")
}

func runDelete(cmd *cobra.Command, args []string) error {
	themes, err := catalog.List(cfg.Paths.ThemesRoot, listOptions())
	if err != nil {
		return err
	}

	i := catalog.Lookup(themes, parseDmenuSelection(args[0]))
	if i < 0 {
		return fmt.Errorf("theme %q not found", args[0])
	}
	t := themes[i]

	if !deleteOpts.yes {
		size, err := catalog.DirSize(t.Dir)
		if err != nil {
			logger.Debug("failed to size theme", "theme", t.Name, "error", err)
		}
		prompt := fmt.Sprintf("Delete theme %s (%s, %s)?", t.Name, t.Dir, humanize.Bytes(uint64(max(size, 0))))
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	ensureWritable(cfg.Paths.ThemesRoot)

	if err := catalog.Delete(cfg.Paths.ThemesRoot, t.Name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", t.Name)

	applied, err := confpatch.Current(cfg.Refind.ConfigFile, confpatch.DirectivesFromConfig(cfg))
	if err != nil {
		logger.Debug("failed to read applied theme", "error", err)
	}
	if applied.Theme == t.Name {
		logger.Warn("the rEFInd config still references the deleted theme", "theme", t.Name, "config", cfg.Refind.ConfigFile)
	}
	return nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt+" [y/N]: ")
	line, err := readLine(in)
	if err != nil {
		// EOF without an answer counts as no.
		return false, nil
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
