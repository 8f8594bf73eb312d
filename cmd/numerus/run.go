package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"numerus/internal/diagfmt"
	"numerus/internal/driver"
	"numerus/internal/interp"
	"numerus/internal/project"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.npp]",
	Short: "Execute a Numerus++ program",
	Long: `Run lexes, parses and executes a program, printing SCRIBE output to stdout.
Without a file argument the [run].main entry of numerus.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	runCmd.Flags().String("numerals", "", "number display style (roman|arabic); defaults to the manifest or roman")
}

func runProgram(cmd *cobra.Command, args []string) error {
	path, manifest, err := resolveRunTarget(args)
	if err != nil {
		return err
	}
	style, err := resolveNumerals(cmd, manifest)
	if err != nil {
		return err
	}
	timings, err := timingsEnabled(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Run(cmd.Context(), path, driver.RunOptions{
		Numerals:      style,
		Stdout:        cmd.OutOrStdout(),
		EnableTimings: timings,
	})
	if res != nil && timings {
		printTimings(cmd.ErrOrStderr(), "", res.Timer)
	}
	if err == nil {
		return nil
	}
	if res == nil {
		return err
	}
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   1,
		ShowNotes: true,
		ShowFixes: true,
	}
	if diagfmt.RenderError(cmd.ErrOrStderr(), err, res.FileSet, opts) {
		return errSilentExit
	}
	return err
}

// resolveRunTarget picks the program to run: the explicit argument, or
// [run].main of the nearest manifest. The manifest is returned when found.
func resolveRunTarget(args []string) (string, *project.Manifest, error) {
	if len(args) == 1 {
		manifest, err := loadManifestNear(filepath.Dir(args[0]))
		return args[0], manifest, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", nil, err
	}
	manifest, err := loadManifestNear(wd)
	if err != nil {
		return "", nil, err
	}
	if manifest == nil {
		return "", nil, fmt.Errorf("no file given and no %s found", project.ManifestName)
	}
	mainPath, err := manifest.MainPath()
	if err != nil {
		return "", nil, err
	}
	return mainPath, manifest, nil
}

// loadManifestNear returns the manifest above dir, or nil when there is none.
func loadManifestNear(dir string) (*project.Manifest, error) {
	manifest, ok, err := project.LoadManifest(dir)
	if err != nil || !ok {
		return nil, err
	}
	return manifest, nil
}

// resolveNumerals applies flag > manifest > default.
func resolveNumerals(cmd *cobra.Command, manifest *project.Manifest) (interp.NumeralStyle, error) {
	value := manifest.Numerals()
	if f := cmd.Flags().Lookup("numerals"); f != nil && f.Changed {
		value = f.Value.String()
	}
	style, err := interp.ParseNumeralStyle(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --numerals value: %w", err)
	}
	return style, nil
}
