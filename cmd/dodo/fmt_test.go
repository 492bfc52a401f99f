package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const unformattedSource = "scalar   x\nx=(21*5)+3+(6*4)   # total\n\n\n\nprint x"

const formattedSource = "scalar x\nx = (21 * 5) + 3 + (6 * 4) # total\n\nprint x\n"

func TestFmtCommandRequiresPath(t *testing.T) {
	err := fmtCommand(nil)
	if err == nil {
		t.Fatalf("expected path required error")
	}
	if !strings.Contains(err.Error(), "path required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFmtCommandCheckDetectsUnformattedFiles(t *testing.T) {
	path := writeDodoFile(t, unformattedSource)
	err := fmtCommand([]string{"-check", path})
	if err == nil {
		t.Fatalf("expected formatting check failure")
	}
	if !strings.Contains(err.Error(), "need formatting") {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestFmtCommandWriteFormatsFileInPlace(t *testing.T) {
	path := writeDodoFile(t, unformattedSource)
	if err := fmtCommand([]string{"-w", path}); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read formatted file: %v", err)
	}
	if got := string(updated); got != formattedSource {
		t.Fatalf("unexpected formatted output: %q", got)
	}
}

func TestFmtCommandPrintsFormattedOutput(t *testing.T) {
	path := writeDodoFile(t, unformattedSource)
	out, err := captureStdout(t, func() error {
		return fmtCommand([]string{path})
	})
	if err != nil {
		t.Fatalf("fmt command failed: %v", err)
	}
	if out != formattedSource {
		t.Fatalf("unexpected stdout output: %q", out)
	}
}

func TestFmtCommandLeavesUnparsableFilesUntouched(t *testing.T) {
	source := "vector y[\nprint   1\n"
	path := writeDodoFile(t, source)
	err := fmtCommand([]string{"-w", path})
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("expected parse failure, got %v", err)
	}
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read file: %v", readErr)
	}
	if string(data) != source {
		t.Fatalf("file was modified: %q", string(data))
	}
}

func TestFmtCommandFormatsDirectories(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "a.dodo")
	second := filepath.Join(root, "nested", "b.dodo")
	ignored := filepath.Join(root, "notes.txt")
	if err := os.MkdirAll(filepath.Dir(second), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.WriteFile(first, []byte("scalar  x\nprint x"), 0o644); err != nil {
		t.Fatalf("write first file: %v", err)
	}
	if err := os.WriteFile(second, []byte("vector y[3]\ny={1 2 3}"), 0o644); err != nil {
		t.Fatalf("write second file: %v", err)
	}
	if err := os.WriteFile(ignored, []byte("not   dodo"), 0o644); err != nil {
		t.Fatalf("write ignored file: %v", err)
	}

	if err := fmtCommand([]string{"-w", root}); err != nil {
		t.Fatalf("fmt directory failed: %v", err)
	}
	if err := fmtCommand([]string{"-check", root}); err != nil {
		t.Fatalf("expected no formatting diffs after write, got %v", err)
	}
	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read second file: %v", err)
	}
	if string(data) != "vector y[3]\ny = {1, 2, 3}\n" {
		t.Fatalf("unexpected nested output: %q", string(data))
	}
	if data, _ := os.ReadFile(ignored); string(data) != "not   dodo" {
		t.Fatalf("non-dodo file was rewritten")
	}
}

func TestFormatDodoSourceIsIdempotent(t *testing.T) {
	sources := []string{
		unformattedSource,
		"# header\n\nfor x {\n  print x\n  x = x - 1\n}\nprint 0\n",
		"matrix m[2, 3]\nm = {{1, 2, 3} {4, 5, 6}}\n",
		"",
	}
	for _, source := range sources {
		once, err := formatDodoSource(source)
		if err != nil {
			t.Fatalf("format %q: %v", source, err)
		}
		twice, err := formatDodoSource(once)
		if err != nil {
			t.Fatalf("reformat %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("formatting is not stable:\n%q\n%q", once, twice)
		}
	}
}

func writeDodoFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.dodo")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dodo file: %v", err)
	}
	return path
}
