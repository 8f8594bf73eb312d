package repl

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"numerus/internal/roman"
)

const (
	Prompt        = "NUMERUS> "
	interruptHint = "CTRL-C detectum. Scribe 'EXITUS' pro exire."
)

// box frames lines with double-line borders, padding by display width.
func box(lines []string, center bool) []string {
	width := 0
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, "╔"+strings.Repeat("═", width+4)+"╗")
	for _, l := range lines {
		pad := width - runewidth.StringWidth(l)
		left := 0
		if center {
			left = pad / 2
		}
		out = append(out, "║  "+strings.Repeat(" ", left)+l+strings.Repeat(" ", pad-left)+"  ║")
	}
	out = append(out, "╚"+strings.Repeat("═", width+4)+"╝")
	return out
}

// BannerLines is the startup banner for the given year.
func BannerLines(year int) []string {
	lines := []string{
		"N U M E R U S  + +",
		"",
		`"Salve, Programmator! Roma Aeterna Est!"`,
	}
	if r, err := roman.ToRoman(int64(year)); err == nil {
		lines = append(lines, "", "Anno Domini "+r)
	}
	out := box(lines, true)
	return append(out, "Scribe 'AUXILIUM' pro auxilio, 'EXITUS' pro exire.")
}

func currentBanner() []string { return BannerLines(time.Now().Year()) }

func HelpLines() []string {
	return box([]string{
		"AUXILIUM",
		"",
		"DECLARA X EST 42          declara X cum valore 42",
		"DECLARA Y EST XIV         numerus Romanus",
		"X EST X ADDIUS Y          assigna",
		"ADDIUS SUBTRAHE MULTIPLICA DIVIDE",
		"SCRIBE(\"Summa: \" ADDIUS X) imprime",
		"ROMANIZA(n)  ARABIZA(n)   conversio",
		"AVTEM                     nihil agit",
		"NOTA: ...                 commentarius",
		"VARIABILES                monstra variabiles",
		"EXITUS                    exi",
	}, false)
}

func FarewellLines() []string {
	return box([]string{
		"VALE! (Farewell, noble programmer!)",
		"Gloria Romae in perpetuum!",
	}, true)
}
