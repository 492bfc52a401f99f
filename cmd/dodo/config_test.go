package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fortio.org/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dodo.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigExplicitFile(t *testing.T) {
	path := writeConfig(t, "strict: true\nlog_level: debug\nrepl:\n  plain: true\n  prompt: \"dodo> \"\n  history_file: /tmp/dodo_history\n")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Strict || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected top-level settings %#v", cfg)
	}
	if !cfg.REPL.Plain || cfg.REPL.Prompt != "dodo> " || cfg.REPL.HistoryFile != "/tmp/dodo_history" {
		t.Fatalf("unexpected repl settings %#v", cfg.REPL)
	}
}

func TestLoadConfigDefaultsWhenAbsent(t *testing.T) {
	t.Setenv(configEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != defaultCLIConfig() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadConfigFromWorkingDirectory(t *testing.T) {
	t.Setenv(configEnvVar, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("strict: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Chdir(dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Strict {
		t.Fatalf("expected strict from ./dodo.yaml")
	}
	if cfg.REPL.Prompt != "$> " {
		t.Fatalf("expected default prompt to survive, got %q", cfg.REPL.Prompt)
	}
}

func TestLoadConfigEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != defaultCLIConfig() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "strcit: true\n", "field strcit not found"},
		{"bad level", "log_level: loud\n", `unknown log level "loud"`},
		{"bad yaml", "strict: [\n", "config: parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tc.content))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.Debug,
		"Verbose": log.Verbose,
		"":        log.Info,
		"warn":    log.Warning,
		"error":   log.Error,
	}
	for name, want := range cases {
		got, err := parseLogLevel(name)
		if err != nil || got != want {
			t.Fatalf("parseLogLevel(%q) = %v, %v", name, got, err)
		}
	}
}

func TestHistoryPath(t *testing.T) {
	if got := (replConfig{}).historyPath(); got != "" {
		t.Fatalf("expected history disabled, got %q", got)
	}
	if got := (replConfig{HistoryFile: "/var/tmp/h"}).historyPath(); got != "/var/tmp/h" {
		t.Fatalf("expected absolute path kept, got %q", got)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := (replConfig{HistoryFile: ".dodo_history"}).historyPath(); got != filepath.Join(home, ".dodo_history") {
		t.Fatalf("expected home-relative path, got %q", got)
	}
}
