package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dodolang/dodo/dodo"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	strict := fs.Bool("strict", false, "fail on operations undefined for their operand shapes")
	checkOnly := fs.Bool("check", false, "only parse the script without executing")
	verbose := fs.Bool("v", false, "log definitions and assignments to stderr")
	configPath := fs.String("config", "", "path to a dodo.yaml config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("dodo run: script path required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.LogLevel = "verbose"
	}
	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	if *checkOnly {
		if _, err := dodo.Parse(input); err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		return nil
	}

	interp := dodo.NewInterpreter(dodo.Config{Strict: cfg.Strict || *strict, Output: os.Stdout})
	if err := interp.Run(input); err != nil {
		var parseErrs dodo.ParseErrors
		if errors.As(err, &parseErrs) {
			return fmt.Errorf("parse failed: %w", err)
		}
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func readScript(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-strict] [-check] [-v] [-config file] <script>")
	fmt.Fprintln(os.Stderr, "    execute a script")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths...>")
	fmt.Fprintln(os.Stderr, "    format .dodo files")
	fmt.Fprintln(os.Stderr, "  analyze <script>")
	fmt.Fprintln(os.Stderr, "    report suspicious statements")
	fmt.Fprintln(os.Stderr, "  repl [-plain] [-strict] [-config file]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp")
	fmt.Fprintln(os.Stderr, "    serve the language server protocol on stdio")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
