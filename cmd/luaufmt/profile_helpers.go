package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"luaufmt/internal/prof"
)

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("cpu-profile", "", "write a CPU profile to this file")
	cmd.Flags().String("mem-profile", "", "write a heap profile to this file")
	cmd.Flags().String("runtime-trace", "", "write a runtime trace to this file")
}

// setupProfiling starts the profilers requested by flags. The returned
// cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	var opts prof.Options
	var err error
	if opts.CPU, err = cmd.Flags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = cmd.Flags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = cmd.Flags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			loggerFromContext(cmd.Context()).Error("profiling", "err", err)
		}
	}, nil
}
