package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numerus/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new numerus project",
	Long: `Initialize a project by writing numerus.toml and a hello-world main.npp.
The directory is created when missing; an existing manifest is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	res, err := project.Init(dir)
	if err != nil {
		return err
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", res.Manifest)
	if res.CreatedMain {
		fmt.Fprintf(out, "created %s\n", res.Main)
	}
	return nil
}
