package lsp

import (
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"

	"numerus/internal/source"
)

// Клиент считает колонки в UTF-16, а source.Span хранит байтовые смещения.

// unitsToBytes returns how many bytes of line the first char UTF-16 units
// cover. A column inside a surrogate pair stops before that rune.
func unitsToBytes(line string, char int) int {
	units, i := 0, 0
	for i < len(line) && units < char {
		r, size := utf8.DecodeRuneInString(line[i:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > char {
			break
		}
		units += n
		i += size
	}
	return i
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if k := utf16.RuneLen(r); k > 0 {
			n += k
		} else {
			n++
		}
	}
	return n
}

func toUint32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		if n < 0 {
			return 0
		}
		return ^uint32(0)
	}
	return v
}

// lineBounds returns the byte range of a 0-based line of f, newline excluded.
func lineBounds(f *source.File, line int) (start, end uint32) {
	end = toUint32(len(f.Content))
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	if line < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	return start, end
}

// fileOffset maps a client position to a byte offset in f. Positions past
// the end of a line clamp to its newline, past the last line to EOF.
func fileOffset(f *source.File, pos position) uint32 {
	if f == nil || pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	if pos.Line > len(f.LineIdx) {
		return toUint32(len(f.Content))
	}
	start, end := lineBounds(f, pos.Line)
	return start + toUint32(unitsToBytes(string(f.Content[start:end]), pos.Character))
}

func filePosition(f *source.File, off uint32) position {
	if f == nil {
		return position{}
	}
	off = min(off, toUint32(len(f.Content)))
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	start, _ := lineBounds(f, line)
	return position{Line: line, Character: utf16Len(string(f.Content[start:off]))}
}

func spanRange(f *source.File, sp source.Span) lspRange {
	if f == nil {
		return lspRange{}
	}
	return lspRange{Start: filePosition(f, sp.Start), End: filePosition(f, sp.End)}
}

// applyChanges replays didChange events on text in order. An event
// without a range replaces the whole document.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, ch := range changes {
		if ch.Range == nil {
			text = ch.Text
			continue
		}
		start := textOffset(text, ch.Range.Start)
		end := max(start, textOffset(text, ch.Range.End))
		text = text[:start] + ch.Text + text[end:]
	}
	return text
}

// textOffset is fileOffset for the editor buffer, which has no line index yet.
func textOffset(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start := 0
	for range pos.Line {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return len(text)
		}
		start += i + 1
	}
	line := text[start:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return start + unitsToBytes(line, pos.Character)
}

// endPosition is the position just past the last character of text.
func endPosition(text string) position {
	last := text[strings.LastIndexByte(text, '\n')+1:]
	return position{Line: strings.Count(text, "\n"), Character: utf16Len(last)}
}
