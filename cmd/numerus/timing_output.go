package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"numerus/internal/observ"
)

func timingsEnabled(cmd *cobra.Command) (bool, error) {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return false, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return on, nil
}

// printTimings writes the phase summary of timer; label is printed first when set.
func printTimings(out io.Writer, label string, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if label != "" {
		fmt.Fprintf(out, "%s\n", label)
	}
	fmt.Fprint(out, timer.Summary())
}
