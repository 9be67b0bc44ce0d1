package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/skinsel/internal/config"
)

var configOpts struct {
	write bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect (defaults, the config file and flag
overrides) as TOML. With --write it is saved to the config file, which is a
convenient way to start one.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configOpts.write, "write", false,
		"Write the configuration to the config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configOpts.write {
		path := globalOpts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if err := getConfig().Save(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	enc := toml.NewEncoder(os.Stdout)
	return enc.Encode(getConfig())
}
