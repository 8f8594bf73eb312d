package fix

import (
	"testing"

	"numerus/internal/diag"
	"numerus/internal/source"
)

func TestSpansConflict(t *testing.T) {
	edit := func(start, end uint32) diag.FixEdit {
		return diag.FixEdit{Span: source.Span{Start: start, End: end}}
	}
	tests := []struct {
		a, b diag.FixEdit
		want bool
	}{
		{edit(0, 0), edit(0, 0), false},
		{edit(2, 2), edit(0, 4), true},
		{edit(4, 4), edit(0, 4), false},
		{edit(0, 3), edit(2, 5), true},
		{edit(0, 2), edit(2, 5), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a.Span, tt.b.Span, got, tt.want)
		}
	}
}
