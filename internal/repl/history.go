package repl

// history is the up/down recall buffer of the interactive prompt.
type history struct {
	entries []string
	pos     int
	draft   string
}

func (h *history) Push(line string) {
	if line == "" {
		return
	}
	if n := len(h.entries); n == 0 || h.entries[n-1] != line {
		h.entries = append(h.entries, line)
	}
	h.pos = len(h.entries)
	h.draft = ""
}

// Prev steps back; current is kept so Next can restore it.
func (h *history) Prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

func (h *history) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}
