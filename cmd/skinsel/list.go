package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/adapter/output"
	"github.com/jmylchreest/skinsel/internal/catalog"
	"github.com/jmylchreest/skinsel/internal/confpatch"
)

var listOpts struct {
	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format      string
	template    string
	sizes       bool
	backgrounds bool
	noTime      bool
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available themes",
	Long: `List the themes found under the themes root, in the order the browser
shows them. The applied theme is marked.

Examples:
  # Human readable list with sizes
  skinsel list --sizes

  # Pick a theme with a launcher and apply it
  skinsel list --format dmenu | fuzzel -d | skinsel apply -

  # Machine readable
  skinsel list --format json --backgrounds`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	// Sort flags
	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "",
		"Sort by field (name, modified; default from config)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", "",
		"Sort order (asc, desc; default from config)")

	// Output flags
	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, dmenu, json, yaml, names)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain/dmenu output")
	listCmd.Flags().BoolVar(&listOpts.sizes, "sizes", false,
		"Include folder sizes")
	listCmd.Flags().BoolVar(&listOpts.backgrounds, "backgrounds", false,
		"Include background file names")
	listCmd.Flags().BoolVar(&listOpts.noTime, "no-time", false,
		"Hide modification times")
}

func runList(cmd *cobra.Command, args []string) error {
	opts := listOptions()
	if listOpts.sortBy != "" {
		opts.Sort.Field = catalog.ParseSortField(listOpts.sortBy)
	}
	if listOpts.sortOrder != "" {
		opts.Sort.Order = catalog.ParseSortOrder(listOpts.sortOrder)
	}

	themes, err := catalog.List(cfg.Paths.ThemesRoot, opts)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyCatalog) {
			logger.Debug("no themes to list", "root", cfg.Paths.ThemesRoot)
			return nil
		}
		return err
	}

	if listOpts.sizes {
		catalog.FillSizes(themes)
	}

	active, err := confpatch.Current(cfg.Refind.ConfigFile, confpatch.DirectivesFromConfig(cfg))
	if err != nil {
		logger.Debug("failed to read applied theme", "error", err)
	}

	var backgrounds func(catalog.Theme) []string
	if listOpts.backgrounds {
		backgrounds = backgroundNames
	}
	rows := output.Rows(themes, active.Theme, backgrounds)

	formatter, err := createFormatter()
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, rows)
}

// backgroundNames returns the base names of a theme's background images.
func backgroundNames(t catalog.Theme) []string {
	paths := catalog.Backgrounds(t.Dir, cfg.Catalog.BackgroundDir, cfg.Catalog.ImagePatterns)
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// createFormatter creates the output formatter based on options.
func createFormatter() (output.Formatter, error) {
	var format output.FormatType
	switch strings.ToLower(listOpts.format) {
	case "plain", "":
		format = output.FormatPlain
	case "dmenu":
		format = output.FormatDmenu
	case "json":
		format = output.FormatJSON
	case "yaml", "yml":
		format = output.FormatYAML
	case "names":
		format = output.FormatNames
	default:
		return nil, fmt.Errorf("unknown format %q (plain, dmenu, json, yaml, names)", listOpts.format)
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	opts.ShowSize = listOpts.sizes
	opts.ShowTime = !listOpts.noTime

	return output.NewFormatter(format, opts), nil
}
