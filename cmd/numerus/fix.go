package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"numerus/internal/driver"
	"numerus/internal/fix"
	"numerus/internal/project"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.npp|directory>...",
	Short: "Apply available fixes to source files",
	Long: `Fix checks the given files and applies the suggested edits attached to
their diagnostics: canonical spelling for non-canonical numerals, DECLARA for
assignments to undeclared variables, and assignment for repeated declarations.
With --all the file is checked again after each round of edits until no fix
is left, so fixes that only appear once the file lexes cleanly are applied
in the same run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply every available fix")
	fixCmd.Flags().Bool("once", false, "apply the first available fix in each file (default)")
	fixCmd.Flags().String("id", "", "apply the fix with a specific identifier, e.g. LEX1004@2:8")
}

func runFix(cmd *cobra.Command, args []string) error {
	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnce, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	opts := fix.ApplyOptions{Mode: fix.ApplyModeOnce, TargetID: targetID}
	switch {
	case targetID != "":
		opts.Mode = fix.ApplyModeID
	case applyAll:
		opts.Mode = fix.ApplyModeAll
	}

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("fix: no %s files found", project.SourceExt)
	}
	// id уникален только в пределах одного файла
	if targetID != "" && len(paths) > 1 {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	total := &fix.ApplyResult{}
	for _, path := range paths {
		res, err := fixFile(cmd, path, opts)
		if res != nil {
			total.Applied = append(total.Applied, res.Applied...)
			total.Skipped = append(total.Skipped, res.Skipped...)
			total.FileChanges = append(total.FileChanges, res.FileChanges...)
		}
		if err != nil && !errors.Is(err, fix.ErrNoFixes) {
			return err
		}
	}
	return writeFixReport(cmd.OutOrStdout(), total)
}

// maxFixPasses bounds the reruns of --all. Sema runs only on files without
// lex or syntax errors, so its fixes show up once the earlier ones are in.
const maxFixPasses = 8

func fixFile(cmd *cobra.Command, path string, opts fix.ApplyOptions) (*fix.ApplyResult, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}
	passes := 1
	if opts.Mode == fix.ApplyModeAll {
		passes = maxFixPasses
	}

	total := &fix.ApplyResult{}
	for range passes {
		res, err := driver.Check(cmd.Context(), path, driver.CheckOptions{
			Stage:          driver.StageAll,
			MaxDiagnostics: maxDiagnostics,
		})
		if err != nil {
			return total, fmt.Errorf("fix: check %s: %w", path, err)
		}
		applied, err := fix.Apply(res.FileSet, res.Bag.Items(), opts)
		mergeFixResult(total, applied)
		if err != nil {
			if errors.Is(err, fix.ErrNoFixes) && len(total.Applied) > 0 {
				return total, nil
			}
			return total, err
		}
		if len(applied.Applied) == 0 {
			break
		}
	}
	return total, nil
}

// mergeFixResult folds one pass into total. Only the last pass's skips are
// kept, since an earlier skip may have been applied later.
func mergeFixResult(total, pass *fix.ApplyResult) {
	if pass == nil {
		return
	}
	total.Applied = append(total.Applied, pass.Applied...)
	total.Skipped = pass.Skipped
	for _, change := range pass.FileChanges {
		merged := false
		for i := range total.FileChanges {
			if total.FileChanges[i].Path == change.Path {
				total.FileChanges[i].EditCount += change.EditCount
				merged = true
				break
			}
		}
		if !merged {
			total.FileChanges = append(total.FileChanges, change)
		}
	}
}

func writeFixReport(w io.Writer, res *fix.ApplyResult) error {
	if len(res.Applied) > 0 {
		fmt.Fprintf(w, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			fmt.Fprintf(w, "  %s [%s] %s (%d edits)\n", item.Title, item.ID, item.PrimaryPath, item.EditCount)
		}
	}
	if len(res.FileChanges) > 0 {
		fmt.Fprintln(w, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(w, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintln(w, "Skipped fixes:")
		for _, skip := range res.Skipped {
			if skip.Title != "" {
				fmt.Fprintf(w, "  %s [%s]: %s\n", skip.Title, skip.ID, skip.Reason)
			} else {
				fmt.Fprintf(w, "  [%s]: %s\n", skip.ID, skip.Reason)
			}
		}
	}
	if len(res.Applied) == 0 {
		_, err := fmt.Fprintln(w, "No applicable fixes found.")
		return err
	}
	return nil
}
