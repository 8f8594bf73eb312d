package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"numerus/internal/project"
	"numerus/internal/roman"
	"numerus/internal/token"
	"numerus/internal/version"
)

// versionReport is what `numerus version` knows about itself: the binary
// and the dialect of Numerus++ it accepts.
type versionReport struct {
	Version   string   `json:"version"`
	Language  string   `json:"language"`
	Extension string   `json:"extension"`
	Numerals  string   `json:"numerals"`
	Min       int64    `json:"min"`
	Max       int64    `json:"max"`
	Keywords  []string `json:"keywords,omitempty"`
	Comment   string   `json:"comment,omitempty"`
	Commit    string   `json:"commit,omitempty"`
	Message   string   `json:"message,omitempty"`
	Built     string   `json:"built,omitempty"`
	Go        string   `json:"go,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "also list keywords and build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the numerus version and the language it accepts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rep := collectVersionReport(versionFull)
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout(), rep)
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func collectVersionReport(full bool) versionReport {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	lo, _ := roman.ToRoman(roman.Min)
	hi, _ := roman.ToRoman(roman.Max)
	rep := versionReport{
		Version:   v,
		Language:  "Numerus++",
		Extension: project.SourceExt,
		Numerals:  lo + ".." + hi,
		Min:       roman.Min,
		Max:       roman.Max,
	}
	if !full {
		return rep
	}
	rep.Keywords = token.Keywords()
	rep.Comment = token.CommentPrefix
	rep.Commit = strings.TrimSpace(version.GitCommit)
	rep.Message = strings.TrimSpace(version.GitMessage)
	rep.Built = strings.TrimSpace(version.BuildDate)
	rep.Go = runtime.Version()
	return rep
}

func renderVersionPretty(out io.Writer, rep versionReport) {
	fmt.Fprintf(out, "numerus %s\n", version.Colored(rep.Version))
	fmt.Fprintf(out, "language: %s (*%s)\n", rep.Language, rep.Extension)
	fmt.Fprintf(out, "numerals: %s (%d..%d)\n", rep.Numerals, rep.Min, rep.Max)
	if rep.Keywords == nil {
		return
	}
	fmt.Fprintf(out, "keywords: %s\n", strings.Join(rep.Keywords, " "))
	fmt.Fprintf(out, "comment:  %s\n", rep.Comment)
	// пустые поля сборки печатаем явно, чтобы было видно, что их не передали
	fmt.Fprintf(out, "commit:   %s\n", valueOrUnknown(rep.Commit))
	if rep.Message != "" {
		fmt.Fprintf(out, "message:  %s\n", rep.Message)
	}
	fmt.Fprintf(out, "built:    %s\n", valueOrUnknown(rep.Built))
	fmt.Fprintf(out, "go:       %s\n", rep.Go)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
