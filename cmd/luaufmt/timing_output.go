package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"luaufmt/internal/observ"
)

// newTimer returns a timer when --timings is set, nil otherwise.
func newTimer(cmd *cobra.Command) *observ.Timer {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !on {
		return nil
	}
	return observ.NewTimer()
}

// printTimings writes the phase table, or the phase report as one JSON
// object when the command emits JSON.
func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) {
	if out == nil || timer == nil {
		return
	}
	if asJSON {
		if err := json.NewEncoder(out).Encode(timer.Report()); err != nil {
			panic(err)
		}
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
