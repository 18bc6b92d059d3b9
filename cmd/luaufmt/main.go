package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"luaufmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "luaufmt",
	Short:         "Luau source formatter",
	Long:          `luaufmt reformats Luau source files according to a style configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorFlag(cmd); err != nil {
			return err
		}
		verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return err
		}
		quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
		if err != nil {
			return err
		}
		level := log.InfoLevel
		switch {
		case verbose:
			level = log.DebugLevel
		case quiet:
			level = log.ErrorLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		return nil
	},
}

// errSilent is returned when the command already reported its outcome and
// only the exit status is left to set.
var errSilent = errors.New("")

func init() {
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("config", "", "use this config file instead of discovering one")
	rootCmd.PersistentFlags().Uint("jobs", 0, "number of files formatted in parallel (0 = one per CPU)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "luaufmt: %v\n", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// useColor reports whether output written to f should be coloured.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}
