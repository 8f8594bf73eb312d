package repl

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	banner lipgloss.Style
	prompt lipgloss.Style
	output lipgloss.Style
	err    lipgloss.Style
	hint   lipgloss.Style
}

func newStyles() styles {
	return styles{
		banner: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		output: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

type model struct {
	session  *Session
	input    textinput.Model
	history  history
	styles   styles
	quitting bool
}

func newModel(s *Session) *model {
	st := newStyles()
	ti := textinput.New()
	ti.Prompt = st.prompt.Render(Prompt)
	ti.Placeholder = "DECLARA X EST XLII"
	ti.CharLimit = 4096
	ti.Focus()
	return &model{session: s, input: ti, styles: st}
}

// Run starts the full-screen-less interactive prompt. Output is printed
// above the input line so it stays in the terminal scrollback.
func Run(s *Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(newModel(s), tea.WithInput(in), tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(m.block(m.styles.banner, currentBanner())))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC:
		if m.input.Value() != "" {
			m.input.Reset()
			return m, nil
		}
		return m, tea.Println(m.styles.hint.Render(interruptHint))
	case tea.KeyCtrlD:
		return m.quit("")
	case tea.KeyUp:
		if line, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil
	case tea.KeyDown:
		if line, ok := m.history.Next(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	echo := m.styles.prompt.Render(Prompt) + line

	res := m.session.Exec(line)
	if res.Quit() {
		return m.quit(echo)
	}
	m.history.Push(strings.TrimSpace(line))

	parts := []string{echo}
	if len(res.Output) > 0 {
		parts = append(parts, m.block(m.styles.output, res.Output))
	}
	if res.Err != nil {
		var b strings.Builder
		m.session.RenderError(&b, res.Err, false)
		parts = append(parts, m.styles.err.Render(strings.TrimRight(b.String(), "\n")))
	}
	return m, tea.Println(strings.Join(parts, "\n"))
}

func (m *model) quit(echo string) (tea.Model, tea.Cmd) {
	m.quitting = true
	text := m.block(m.styles.banner, FarewellLines())
	if echo != "" {
		text = echo + "\n" + text
	}
	return m, tea.Sequence(tea.Println(text), tea.Quit)
}

func (m *model) block(style lipgloss.Style, lines []string) string {
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = style.Render(l)
	}
	return strings.Join(rendered, "\n")
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	return m.input.View() + "\n"
}
