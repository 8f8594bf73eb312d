package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"numerus/internal/diagfmt"
	"numerus/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.npp",
	Short: "Parse a source file and print its syntax tree",
	Long:  `Parse recovers from syntax errors at line boundaries, so the tree holds every statement that parsed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, opts)
	}

	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Program, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Program)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errSilentExit
	}
	return nil
}
