package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.luau", []byte("hello world"), 0)
	id2 := fs.Add("test.luau", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("test.luau")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest: want %d, got %d (ok=%v)", id2, latest, ok)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Fatalf("old version lost: got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		flags FileFlags
	}{
		{name: "plain", in: "a\nb\n", want: "a\nb\n"},
		{name: "crlf", in: "a\r\nb\r\n", want: "a\nb\n", flags: FileNormalizedCRLF},
		{name: "cr", in: "a\rb\r", want: "a\nb\n", flags: FileNormalizedCR},
		{name: "bom", in: "\xEF\xBB\xBFx\n", want: "x\n", flags: FileHadBOM},
		{name: "mixed", in: "a\r\nb\rc", want: "a\nb\nc", flags: FileNormalizedCRLF | FileNormalizedCR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flags := Normalize([]byte(tt.in))
			if string(got) != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
			if flags != tt.flags {
				t.Fatalf("flags: want %b, got %b", tt.flags, flags)
			}
		})
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.luau", []byte("a\r\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx: want %v, got %v", want, file.LineIdx)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx: want %v, got %v", want, file.LineIdx)
		}
	}
	if file.Flags&FileVirtual == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("unexpected flags %b", file.Flags)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.luau", []byte("ab\ncd\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
	}
	for _, tt := range tests {
		got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Fatalf("offset %d: want %+v, got %+v", tt.off, tt.want, got)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.luau", []byte("one\ntwo\nthree")))
	for n, want := range map[uint32]string{1: "one", 2: "two", 3: "three", 4: "", 0: ""} {
		if got := f.GetLine(n); got != want {
			t.Fatalf("line %d: want %q, got %q", n, want, got)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lua")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFlocal x = 1\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "local x = 1\n" {
		t.Fatalf("want normalized content, got %q", got)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags not recorded: %b", f.Flags)
	}
}
