package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"numerus/internal/diag"
	"numerus/internal/diagfmt"
	"numerus/internal/driver"
	"numerus/internal/project"
	"numerus/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.npp|directory]...",
	Short: "Report diagnostics without executing",
	Long: `Check lexes, parses and analyses source files and reports every problem
found. Directories are expanded to the *.npp files below them. Exit status is 1
when any error was reported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags, err := readCheckFlags(cmd, true)
		if err != nil {
			return err
		}
		return runCheckPaths(cmd, args, flags)
	},
}

func init() {
	checkCmd.Flags().String("format", "json", "output format (json|pretty|short)")
	checkCmd.Flags().String("stages", "", "stages to run (tokenize|syntax|sema|all); defaults to the manifest or all")
	checkCmd.Flags().Bool("no-warnings", false, "drop warnings and infos")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("unused", false, "report variables that are never read")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse results for unchanged files from the disk cache")
	checkCmd.Flags().String("ui", "auto", "progress UI for several files (auto|on|off)")
}

type checkFlags struct {
	format           string
	stages           string
	noWarnings       bool
	warningsAsErrors bool
	unused           bool
	jobs             int
	cache            bool
	ui               uiMode
}

// readCheckFlags reads the check flags; with sub unset (root --check) the
// defaults of the check subcommand are used.
func readCheckFlags(cmd *cobra.Command, sub bool) (checkFlags, error) {
	flags := checkFlags{format: "json", ui: uiModeOff}
	if !sub {
		return flags, nil
	}
	var err error
	fs := cmd.Flags()
	if flags.format, err = fs.GetString("format"); err != nil {
		return flags, fmt.Errorf("failed to get format flag: %w", err)
	}
	flags.format = strings.ToLower(flags.format)
	switch flags.format {
	case "json", "pretty", "short":
	default:
		return flags, fmt.Errorf("unknown format %q (expected json|pretty|short)", flags.format)
	}
	if flags.stages, err = fs.GetString("stages"); err != nil {
		return flags, fmt.Errorf("failed to get stages flag: %w", err)
	}
	if flags.noWarnings, err = fs.GetBool("no-warnings"); err != nil {
		return flags, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if flags.warningsAsErrors, err = fs.GetBool("warnings-as-errors"); err != nil {
		return flags, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if flags.noWarnings && flags.warningsAsErrors {
		return flags, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if flags.unused, err = fs.GetBool("unused"); err != nil {
		return flags, fmt.Errorf("failed to get unused flag: %w", err)
	}
	if flags.jobs, err = fs.GetInt("jobs"); err != nil {
		return flags, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if flags.cache, err = fs.GetBool("cache"); err != nil {
		return flags, fmt.Errorf("failed to get cache flag: %w", err)
	}
	uiStr, err := fs.GetString("ui")
	if err != nil {
		return flags, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if flags.ui, err = readUIMode(uiStr); err != nil {
		return flags, err
	}
	return flags, nil
}

func runCheckPaths(cmd *cobra.Command, args []string, flags checkFlags) error {
	manifest, args, err := checkTargets(args)
	if err != nil {
		return err
	}

	stagesStr := flags.stages
	if stagesStr == "" {
		stagesStr = manifest.Stages()
	}
	stage, err := driver.ParseStage(stagesStr)
	if err != nil {
		return err
	}

	maxDiagnostics := manifest.MaxDiagnostics()
	if f := cmd.Root().PersistentFlags().Lookup("max-diagnostics"); f != nil && f.Changed {
		if maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	timings, err := timingsEnabled(cmd)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s files found", project.SourceExt)
	}

	opts := driver.CheckOptions{
		Stage:            stage,
		MaxDiagnostics:   maxDiagnostics,
		IgnoreWarnings:   flags.noWarnings,
		WarningsAsErrors: flags.warningsAsErrors,
		ReportUnused:     flags.unused,
		EnableTimings:    timings,
	}
	if flags.cache {
		cache, err := driver.OpenDiskCache("numerus")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	var results []*driver.CheckResult
	if shouldUseTUI(flags.ui, flags.format, len(paths)) {
		results, err = ui.RunCheck(cmd.Context(), "numerus check", paths, opts, flags.jobs, cmd.OutOrStdout())
	} else {
		results, err = driver.CheckFiles(cmd.Context(), paths, opts, flags.jobs, nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writeCheckOutput(out, results, flags.format, useColor(cmd, os.Stdout)); err != nil {
		return err
	}
	if flags.format == "pretty" && !quiet {
		writeCheckSummary(out, results)
	}
	if timings {
		for _, res := range results {
			label := ""
			if len(results) > 1 {
				label = res.Path
			}
			printTimings(cmd.ErrOrStderr(), label, res.Timer)
		}
	}

	for _, res := range results {
		if res.HasErrors() {
			return errSilentExit
		}
	}
	return nil
}

// checkTargets falls back to [run].main when no path was given.
func checkTargets(args []string) (*project.Manifest, []string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
		if st, err := os.Stat(dir); err != nil || !st.IsDir() {
			dir = filepath.Dir(dir)
		}
	}
	manifest, err := loadManifestNear(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(args) > 0 {
		return manifest, args, nil
	}
	if manifest == nil {
		return nil, nil, fmt.Errorf("no file given and no %s found", project.ManifestName)
	}
	mainPath, err := manifest.MainPath()
	if err != nil {
		return nil, nil, err
	}
	return manifest, []string{mainPath}, nil
}

func writeCheckOutput(w io.Writer, results []*driver.CheckResult, format string, color bool) error {
	switch format {
	case "json":
		jsonOpts := diagfmt.JSONOpts{IncludeFile: len(results) > 1, PathMode: diagfmt.PathModeAuto}
		out := diagfmt.DiagnosticsOutput{}
		for _, res := range results {
			out.Diagnostics = append(out.Diagnostics, diagfmt.BuildDiagnostics(res.Bag.Items(), res.FileSet, jsonOpts)...)
		}
		return diagfmt.WriteJSON(w, out)
	case "pretty":
		opts := diagfmt.PrettyOpts{Color: color, Context: 1, ShowNotes: true, ShowFixes: true}
		for _, res := range results {
			diagfmt.Pretty(w, res.Bag, res.FileSet, opts)
		}
		return nil
	case "short":
		for _, res := range results {
			if err := diagfmt.Short(w, res.Bag.Items(), res.FileSet, false); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeCheckSummary(w io.Writer, results []*driver.CheckResult) {
	var errs, warns int
	for _, res := range results {
		errs += res.Bag.CountBySeverity(diag.SevError)
		warns += res.Bag.CountBySeverity(diag.SevWarning)
	}
	noun := "files"
	if len(results) == 1 {
		noun = "file"
	}
	fmt.Fprintf(w, "checked %d %s: %d errors, %d warnings\n", len(results), noun, errs, warns)
}
