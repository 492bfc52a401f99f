package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "dodo.yaml"
	configEnvVar      = "DODO_CONFIG"
)

// cliConfig models dodo.yaml.
type cliConfig struct {
	Strict   bool       `yaml:"strict"`
	LogLevel string     `yaml:"log_level"`
	REPL     replConfig `yaml:"repl"`
}

type replConfig struct {
	Plain       bool   `yaml:"plain"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		LogLevel: "info",
		REPL: replConfig{
			Prompt:      "$> ",
			HistoryFile: ".dodo_history",
		},
	}
}

// loadConfig reads the config file at path, falling back to $DODO_CONFIG and
// then ./dodo.yaml. A missing file is only an error when it was named
// explicitly.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(configEnvVar)
		explicit = path != ""
	}
	if path == "" {
		path = defaultConfigFile
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.REPL.Prompt == "" {
		cfg.REPL.Prompt = defaultCLIConfig().REPL.Prompt
	}
	log.LogVf("loaded config from %s", path)
	return cfg, nil
}

func parseLogLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.Debug, nil
	case "verbose":
		return log.Verbose, nil
	case "", "info":
		return log.Info, nil
	case "warning", "warn":
		return log.Warning, nil
	case "error":
		return log.Error, nil
	default:
		return log.Info, fmt.Errorf("unknown log level %q", name)
	}
}

func applyLogLevel(name string) error {
	level, err := parseLogLevel(name)
	if err != nil {
		return err
	}
	log.SetLogLevel(level)
	return nil
}

// historyPath resolves the REPL history file. Relative paths live in the
// user's home directory; an empty setting disables history.
func (c replConfig) historyPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile)
}
