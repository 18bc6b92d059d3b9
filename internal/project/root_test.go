package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := filepath.Join(root, ".luaufmt.toml")
	if err := os.WriteFile(cfg, []byte("column_width = 80\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	file := filepath.Join(nested, "init.luau")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, start := range []string{nested, file} {
		got, ok, err := FindConfig(start)
		if err != nil || !ok {
			t.Fatalf("FindConfig(%q): ok=%v err=%v", start, ok, err)
		}
		if got != cfg {
			t.Fatalf("want %q, got %q", cfg, got)
		}
	}
}

func TestFindConfigPrefersPlainName(t *testing.T) {
	root := t.TempDir()
	for _, name := range ConfigNames {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, ok, err := FindConfig(root)
	if err != nil || !ok || filepath.Base(got) != "luaufmt.toml" {
		t.Fatalf("want luaufmt.toml, got %q (ok=%v err=%v)", got, ok, err)
	}
}
