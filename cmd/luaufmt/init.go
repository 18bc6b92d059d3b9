package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"luaufmt/internal/config"
	"luaufmt/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default luaufmt.toml",
	Long: `Init writes a luaufmt.toml holding the default style configuration into
[dir], or the current directory when omitted. An existing file is left alone
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

const configHeader = `# luaufmt style configuration.
# Enum values are case-insensitive. Remove a key to fall back to its default.

`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path := filepath.Join(target, project.ConfigNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := config.Encode(&buf, config.Default()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	loggerFromContext(cmd.Context()).Debug("wrote config", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
