package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"luaufmt/internal/diagfmt"
	"luaufmt/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.luau",
	Short: "Parse a Luau source file and print its outline",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Bool("diagnostics", false, "print diagnostics as JSON instead of the outline")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	diagOnly, err := cmd.Flags().GetBool("diagnostics")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	timer := newTimer(cmd)
	var phase int
	if timer != nil {
		phase = timer.Begin("parse")
	}
	result, err := driver.Parse(args[0], maxDiagnostics)
	if timer != nil {
		timer.End(phase, args[0])
		defer printTimings(cmd.ErrOrStderr(), timer, format == "json")
	}
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	result.Bag.Sort()

	out := cmd.OutOrStdout()
	if diagOnly {
		return diagfmt.JSON(out, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   1,
			ShowNotes: true,
		})
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatCstPretty(out, result.Cst, result.FileSet)
	case "json":
		err = diagfmt.FormatCstJSON(out, result.Cst, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Cst.HasErrors {
		return errSilent
	}
	return nil
}
