package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"luaufmt/internal/config"
)

// resetFlags restores every flag of the command tree to its default so
// tests can share the global commands.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFmtRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.luau")
	writeFile(t, path, "local   x=1")

	out, _, err := runCLI(t, "", "fmt", "--ui", "off", dir)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if !strings.Contains(out, "reformatted "+path) {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "local x = 1\n" {
		t.Fatalf("want formatted file, got %q", data)
	}
}

func TestCheckReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.luau")
	writeFile(t, path, "local   x=1\n")

	out, _, err := runCLI(t, "", "check", "--ui", "off", "--diff", path)
	if !errors.Is(err, errSilent) {
		t.Fatalf("want a failing check, got %v", err)
	}
	for _, want := range []string{path, "line 1:", "- local   x=1", "+ local x = 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q does not contain %q", out, want)
		}
	}
	data, _ := os.ReadFile(path)
	if string(data) != "local   x=1\n" {
		t.Fatalf("check modified the file: %q", data)
	}

	writeFile(t, path, "local x = 1\n")
	if _, _, err := runCLI(t, "", "fmt", "--check", "--ui", "off", path); err != nil {
		t.Fatalf("formatted file failed the check: %v", err)
	}
}

func TestFmtStdin(t *testing.T) {
	out, _, err := runCLI(t, "local   x=1", "fmt", "-")
	if err != nil {
		t.Fatalf("fmt -: %v", err)
	}
	if out != "local x = 1\n" {
		t.Fatalf("unexpected stdout %q", out)
	}
}

func TestFmtSyntaxErrorPrintsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.luau")
	writeFile(t, path, "local = 1\n")

	_, errOut, err := runCLI(t, "", "fmt", "--ui", "off", path)
	if err == nil {
		t.Fatal("expected an error for a file with syntax errors")
	}
	if !strings.Contains(errOut, "bad.luau:1:") || !strings.Contains(errOut, "SYN") {
		t.Fatalf("diagnostics missing from stderr: %q", errOut)
	}
}

func TestFmtRejectsConflictingFlags(t *testing.T) {
	_, _, err := runCLI(t, "", "fmt", "--check", "--stdout", "x.luau")
	if err == nil || !strings.Contains(err.Error(), "--stdout cannot be used with --check") {
		t.Fatalf("unexpected error %v", err)
	}
	_, _, err = runCLI(t, "", "fmt", "--diff", "x.luau")
	if err == nil || !strings.Contains(err.Error(), "--diff requires --check") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestInitAndConfig(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := runCLI(t, "", "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(dir, "luaufmt.toml")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("generated config differs from defaults: %+v", cfg)
	}
	if _, _, err := runCLI(t, "", "init", dir); err == nil {
		t.Fatal("init overwrote an existing config")
	}

	out, _, err := runCLI(t, "", "config", dir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "# from "+path) || !strings.Contains(out, "column_width = 100") {
		t.Fatalf("unexpected config output:\n%s", out)
	}
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.luau")
	writeFile(t, path, "local x = 1\n")

	out, _, err := runCLI(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.HasPrefix(out, "File (1 statements)\n") {
		t.Fatalf("unexpected outline %q", out)
	}

	out, _, err = runCLI(t, "", "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	if len(tokens) != 5 {
		t.Fatalf("want 5 tokens, got %d", len(tokens))
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "luaufmt" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		name          string
		before, after string
		line          int
		old, updated  string
		ok            bool
	}{
		{"equal", "a\nb\n", "a\nb\n", 0, "", "", false},
		{"second line", "a\nb  \n", "a\nb\n", 2, "b  ", "b", true},
		{"line ending", "a\r\nb\r\n", "a\nb\n", 1, `a\r`, "a", true},
		{"final newline", "a", "a\n", 2, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, old, updated, ok := firstDiff([]byte(tt.before), []byte(tt.after))
			if line != tt.line || old != tt.old || updated != tt.updated || ok != tt.ok {
				t.Fatalf("want (%d, %q, %q, %v), got (%d, %q, %q, %v)",
					tt.line, tt.old, tt.updated, tt.ok, line, old, updated, ok)
			}
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error for an invalid mode")
	}
	if !shouldUseTUI(uiModeOn, false) || shouldUseTUI(uiModeOff, true) {
		t.Fatal("explicit ui modes must win over detection")
	}
}

func TestFmtTimingsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.luau")
	writeFile(t, path, "local x = 1\n")

	_, errOut, err := runCLI(t, "", "fmt", "--timings", "--format", "json", "--ui", "off", path)
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	var report struct {
		Phases []struct {
			Name string `json:"name"`
		} `json:"phases"`
	}
	if err := json.Unmarshal([]byte(errOut), &report); err != nil {
		t.Fatalf("timings are not JSON: %v\n%s", err, errOut)
	}
	var names []string
	for _, p := range report.Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "collect,format" {
		t.Fatalf("unexpected phases %v", names)
	}
}
