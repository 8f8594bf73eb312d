package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.npp", []byte("SCRIBE(I)"), 0)
	id2 := fs.Add("main.npp", []byte("SCRIBE(II)"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("main.npp")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "SCRIBE(I)" {
		t.Errorf("old version lost, got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	content := "DECLARA x EST 1\nSCRIBE(x)\n\"μμ\" ADDIUS y\n"
	id := fs.AddVirtual("t.npp", []byte(content))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{1, 1}},
		{"inside first line", 8, LineCol{1, 9}},
		{"newline belongs to its line", 15, LineCol{1, 16}},
		{"second line", 16, LineCol{2, 1}},
		{"after multibyte runes", 32, LineCol{3, 5}},
		{"end of file", uint32(len(content)), LineCol{4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.npp", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	for i, want := range []string{"", "first", "second", "third", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount())
	}
}

func TestAddNormalizesBOMAndCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.npp", []byte("\xEF\xBB\xBFAVTEM\r\nAVTEM\r\n"))
	f := fs.Get(id)

	if string(f.Content) != "AVTEM\nAVTEM\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 || f.Flags&FileVirtual == 0 {
		t.Errorf("unexpected flags %08b", f.Flags)
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("LineIdx = %v, want two entries", f.LineIdx)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.npp")
	if err := os.WriteFile(path, []byte("SCRIBE(X)\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := string(fs.Get(id).Content); got != "SCRIBE(X)\n" {
		t.Errorf("content = %q", got)
	}
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.npp")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Errorf("cross-file Cover changed span: %v", got)
	}
	if !a.Contains(4) || a.Contains(8) {
		t.Error("Contains must be half-open")
	}
	if a.StartPoint().Len() != 0 {
		t.Error("StartPoint must be empty")
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := filepath.Join(base, "a", "main.npp")
	outside := filepath.Join(tmp, "other", "main.npp")

	got, err := RelativePath(inside, base)
	if err != nil || got != "a/main.npp" {
		t.Errorf("RelativePath(inside) = %q, %v", got, err)
	}
	got, err = RelativePath(outside, base)
	if err != nil || got != normalizePath(outside) {
		t.Errorf("RelativePath(outside) = %q, %v", got, err)
	}
}
