package main

import (
	"os"

	"github.com/spf13/cobra"

	"numerus/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Repl executes one line at a time with a persistent environment.
EXITUS quits, AUXILIUM prints help, VARIABILES lists variables.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("numerals", "", "number display style (roman|arabic)")
}

func runRepl(cmd *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := loadManifestNear(wd)
	if err != nil {
		return err
	}
	style, err := resolveNumerals(cmd, manifest)
	if err != nil {
		return err
	}

	session := repl.NewSession(repl.Options{Numerals: style, Color: useColor(cmd, os.Stdout)})
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		return repl.Run(session, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return repl.RunPlain(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), session, false)
}
