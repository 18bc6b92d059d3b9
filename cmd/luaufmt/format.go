package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"luaufmt/internal/config"
	"luaufmt/internal/diagfmt"
	"luaufmt/internal/driver"
	"luaufmt/internal/format"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Luau source files",
	Long: `Format rewrites .lua and .luau files in place. Directories are walked
recursively; "-" reads source from standard input and writes the result to
standard output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Report files that are not formatted",
	Long:  `Check exits with status 1 when formatting would change any file. Nothing is written.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	for _, cmd := range []*cobra.Command{fmtCmd, checkCmd} {
		cmd.Flags().Bool("diff", false, "with --check, show the first differing line of each file")
		cmd.Flags().String("format", "text", "output format (text|json)")
		cmd.Flags().Bool("no-cache", false, "do not consult or update the formatted-files cache")
		cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
		addProfileFlags(cmd)
	}
}

type fmtFlags struct {
	check      bool
	stdout     bool
	diff       bool
	format     string
	noCache    bool
	ui         uiMode
	quiet      bool
	configPath string
	jobs       uint
	maxDiag    int
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	f.check = cmd.Name() == "check"
	if cmd.Flags().Lookup("check") != nil {
		checkFlag, err := cmd.Flags().GetBool("check")
		if err != nil {
			return f, err
		}
		f.check = f.check || checkFlag
		if f.stdout, err = cmd.Flags().GetBool("stdout"); err != nil {
			return f, err
		}
	}
	if f.diff, err = cmd.Flags().GetBool("diff"); err != nil {
		return f, err
	}
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, err
	}
	if f.noCache, err = cmd.Flags().GetBool("no-cache"); err != nil {
		return f, err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}

	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.configPath, err = root.GetString("config"); err != nil {
		return f, err
	}
	if f.jobs, err = root.GetUint("jobs"); err != nil {
		return f, err
	}
	if f.maxDiag, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}

	switch {
	case f.stdout && f.check:
		return f, errors.New("fmt: --stdout cannot be used with --check")
	case f.stdout && f.format != "text":
		return f, errors.New("fmt: --stdout is only supported with text output")
	case f.diff && !f.check:
		return f, errors.New("fmt: --diff requires --check")
	case f.format != "text" && f.format != "json":
		return f, fmt.Errorf("fmt: unsupported output format %q", f.format)
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())
	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.FormatOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		MaxDiagnostics: flags.maxDiag,
		Jobs:           flags.jobs,
		Logger:         logger,
		Timer:          newTimer(cmd),
	}
	if flags.configPath != "" {
		cfg, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		opts.Config = &cfg
	}

	if len(args) == 1 && args[0] == driver.StdinPath {
		return runFmtStdin(cmd, flags, opts)
	}

	if !flags.noCache {
		cache, err := driver.OpenDiskCache("luaufmt")
		if err != nil {
			logger.Warn("cache disabled", "err", err)
		} else {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if shouldUseTUI(flags.ui, flags.format == "text" && !flags.stdout && !flags.quiet) {
		results, err = formatWithUI(cmd.Context(), "formatting", args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}
	defer printTimings(cmd.ErrOrStderr(), opts.Timer, flags.format == "json")

	out := cmd.OutOrStdout()
	var hasErrors, hasChanges bool
	switch {
	case flags.format == "json":
		hasErrors, hasChanges = summarize(results)
		if err := renderFmtJSON(out, results, flags.check); err != nil {
			return err
		}
	case flags.stdout:
		hasErrors = renderFmtStdout(cmd, results, flags.maxDiag)
	default:
		hasErrors, hasChanges = renderFmtText(cmd, results, flags)
	}

	if hasErrors {
		return errors.New("fmt: failed to format some files")
	}
	if flags.check && hasChanges {
		return errSilent
	}
	return nil
}

func runFmtStdin(cmd *cobra.Command, flags fmtFlags, opts driver.FormatOptions) error {
	res, err := driver.FormatReader(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}
	if res.Err != nil {
		reportFailure(cmd, res, flags.maxDiag)
		return errSilent
	}
	if flags.check {
		if res.Changed {
			if !flags.quiet {
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
			return errSilent
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(res.Formatted)
	return err
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

// reportFailure prints the error of one file, with its parse diagnostics
// when the file was skipped for syntax errors.
func reportFailure(cmd *cobra.Command, res driver.FormatResult, maxDiag int) {
	errOut := cmd.ErrOrStderr()
	if errors.Is(res.Err, format.ErrErroneousCst) && res.Diagnostics != nil && res.FileSet != nil {
		res.Diagnostics.Sort()
		diagfmt.Pretty(errOut, res.Diagnostics, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   1,
			ShowNotes: true,
		})
		if maxDiag > 0 && res.Diagnostics.Len() >= maxDiag {
			fmt.Fprintf(errOut, "fmt: %s: too many errors, output truncated\n", res.Path)
		}
		return
	}
	fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult, maxDiag int) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFailure(cmd, res, maxDiag)
			continue
		}
		if _, err := cmd.OutOrStdout().Write(res.Formatted); err != nil {
			panic(err)
		}
	}
	return hasErrors
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, flags fmtFlags) (hasErrors, hasChanges bool) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFailure(cmd, res, flags.maxDiag)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if flags.quiet {
			continue
		}
		if !flags.check {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
			continue
		}
		fmt.Fprintln(out, res.Path)
		if flags.diff {
			writeFirstDiff(out, res.Original, res.Formatted)
		}
	}
	return hasErrors, hasChanges
}

// writeFirstDiff prints the first line where before and after differ.
func writeFirstDiff(w io.Writer, before, after []byte) {
	line, old, updated, ok := firstDiff(before, after)
	if !ok {
		return
	}
	del := color.New(color.FgRed)
	add := color.New(color.FgGreen)
	fmt.Fprintf(w, "  line %d:\n", line)
	fmt.Fprintf(w, "  %s\n", del.Sprint("- "+old))
	fmt.Fprintf(w, "  %s\n", add.Sprint("+ "+updated))
}

func renderFmtJSON(w io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Cached   bool   `json:"cached,omitempty"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
