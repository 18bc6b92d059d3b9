package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"luaufmt/internal/config"
	"luaufmt/internal/driver"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Print the effective configuration",
	Long: `Config prints, as TOML, the style configuration that applies to [path]
(the current directory by default). The --config flag takes precedence over
discovery.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}

	var cfg config.Config
	source := explicit
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, source, err = driver.ResolveConfig(path)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if source == "" {
		fmt.Fprintln(out, "# no config file found, using defaults")
	} else {
		fmt.Fprintf(out, "# from %s\n", source)
	}
	return config.Encode(out, cfg)
}
