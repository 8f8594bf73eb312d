package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numerus/internal/version"
)

// errSilentExit signals exit status 1 after diagnostics were already printed.
var errSilentExit = errors.New("exit status 1")

var rootCmd = &cobra.Command{
	Use:   "numerus [flags] [file.npp]",
	Short: "Numerus++ interpreter",
	Long: `Numerus++ is a small interpreted language with Latin keywords and
Roman numerals. With a file argument the program is executed; without one an
interactive session starts.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceErrors:     true,
	PersistentPreRunE: preRun,
	RunE:              runRoot,
}

var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

func init() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write a trace to this file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	rootCmd.Flags().Bool("check", false, "check the file and print diagnostics as JSON instead of running it")
}

// main executes the root command. Any returned error exits with status 1.
func main() {
	err := rootCmd.Execute()
	profileCleanup()
	traceCleanup()
	if err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

func preRun(cmd *cobra.Command, _ []string) error {
	// флаги уже разобраны, дальше ошибки не про использование
	cmd.SilenceUsage = true

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !useColor(cmd, os.Stdout)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	profileCleanup = stopProfiling
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if check {
		if len(args) == 0 {
			return fmt.Errorf("usage: numerus --check <file.npp>")
		}
		opts, err := readCheckFlags(cmd, false)
		if err != nil {
			return err
		}
		return runCheckPaths(cmd, args, opts)
	}
	if len(args) == 0 {
		return runRepl(cmd, nil)
	}
	return runProgram(cmd, args)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output going to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}
