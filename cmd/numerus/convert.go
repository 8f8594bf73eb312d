package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"numerus/internal/roman"
)

var convertCmd = &cobra.Command{
	Use:   "convert VALUE...",
	Short: "Convert between decimal and Roman numerals",
	Long: `Convert prints the Roman form of every decimal argument and the decimal
value of every Roman argument. Roman input must be canonical.`,
	Example: "  numerus convert 1994 XLII",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false
		errLabel := color.New(color.FgRed, color.Bold)
		for _, arg := range args {
			result, err := convertValue(arg)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", errLabel.Sprint("error:"), arg, err)
				failed = true
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", strings.TrimSpace(arg), result)
		}
		if failed {
			return errSilentExit
		}
		return nil
	},
}

// convertValue turns decimals into Roman numerals and Roman numerals into decimals.
func convertValue(arg string) (string, error) {
	s := strings.TrimSpace(arg)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return roman.ToRoman(n)
	}
	n, err := roman.FromRoman(strings.ToUpper(s))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}
