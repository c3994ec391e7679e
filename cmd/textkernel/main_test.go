package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "textkernel ") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunLuaScript(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "notes.txt", "hello\nworld")
	lua := writeFile(t, dir, "edit.lua", `doc.replace(0, 0, 0, 5, "goodbye")`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "error", "-script", lua, input}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if got := stdout.String(); got != "goodbye\nworld" {
		t.Errorf("stdout = %q", got)
	}
}

func TestRunJSONSnapshot(t *testing.T) {
	dir := t.TempDir()
	ops := writeFile(t, dir, "ops.json", `[{"op": "insert", "at": [0, 0], "text": "a\nb"}]`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "error", "-json", "-script", ops}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}

	out := stdout.String()
	if !gjson.Valid(out) {
		t.Fatalf("invalid JSON: %q", out)
	}
	if n := gjson.Get(out, "lines.#").Int(); n != 2 {
		t.Errorf("lines = %d, want 2", n)
	}
	if rev := gjson.Get(out, "revision").Int(); rev != 1 {
		t.Errorf("revision = %d, want 1", rev)
	}
}

func TestRunReadOnly(t *testing.T) {
	dir := t.TempDir()
	lua := writeFile(t, dir, "edit.lua", `doc.insert(0, 0, "x")`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "error", "-read-only", "-script", lua}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "read-only") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "textkernel.toml", "[logging]\nlevel = \"bogus\"\n")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfg}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code %d, want 1 for an invalid config", code)
	}
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "script.txt", "")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"watch without script", []string{"-watch"}, 2},
		{"too many files", []string{"a", "b"}, 2},
		{"unknown flag", []string{"-bogus"}, 2},
		{"unsupported script", []string{"-log-level", "error", "-script", txt}, 1},
		{"missing input", []string{filepath.Join(dir, "missing.txt")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.want {
				t.Errorf("exit code %d, want %d (stderr %q)", code, tt.want, stderr.String())
			}
		})
	}
}
