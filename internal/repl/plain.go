package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// RunPlain is the line loop used when stdin is not a terminal. The banner
// and prompt are printed only when interactive is set.
func RunPlain(r io.Reader, stdout, stderr io.Writer, s *Session, interactive bool) error {
	prompt := color.New(color.FgHiYellow, color.Bold)
	banner := color.New(color.FgHiYellow)
	if s.opts.Color {
		prompt.EnableColor()
		banner.EnableColor()
	} else {
		prompt.DisableColor()
		banner.DisableColor()
	}

	if interactive {
		for _, l := range currentBanner() {
			banner.Fprintln(stdout, l) //nolint:errcheck
		}
	}

	sc := bufio.NewScanner(r)
	for {
		if interactive {
			prompt.Fprint(stdout, Prompt) //nolint:errcheck
		}
		if !sc.Scan() {
			break
		}
		res := s.Exec(sc.Text())
		if res.Quit() {
			if interactive {
				for _, l := range FarewellLines() {
					banner.Fprintln(stdout, l) //nolint:errcheck
				}
			}
			return nil
		}
		for _, l := range res.Output {
			fmt.Fprintln(stdout, l)
		}
		if res.Err != nil {
			s.RenderError(stderr, res.Err, s.opts.Color)
		}
	}
	return sc.Err()
}
