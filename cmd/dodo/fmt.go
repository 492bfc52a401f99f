package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/log"

	"github.com/dodolang/dodo/dodo"
)

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("dodo fmt: path required")
	}

	files, err := collectDodoFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	changedCount := 0
	failed := 0
	for _, path := range files {
		originalBytes, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		original := string(originalBytes)
		formatted, err := formatDodoSource(original)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		changed := formatted != original
		if changed {
			changedCount++
			log.LogVf("%s needs formatting", path)
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*write && !*check:
			fmt.Print(formatted)
		}
	}

	if failed > 0 {
		return fmt.Errorf("dodo fmt: %d file(s) failed to parse", failed)
	}
	if *check && changedCount > 0 {
		return fmt.Errorf("dodo fmt: %d file(s) need formatting", changedCount)
	}

	return nil
}

func collectDodoFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		if filepath.Ext(path) != ".dodo" {
			return
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatDodoSource re-renders source one statement per line. A comment that
// shared a line with the statement before it stays on that line, and a run of
// blank lines between statements collapses to one.
func formatDodoSource(source string) (string, error) {
	program, err := dodo.Parse(source)
	if err != nil {
		return "", err
	}
	if len(program.Statements) == 0 {
		return "", nil
	}

	var b strings.Builder
	prevLine := 0
	prevSpan := 0
	for i, stmt := range program.Statements {
		rendered := stmt.String()
		line := stmt.Pos().Line
		if i > 0 {
			_, isComment := stmt.(*dodo.CommentStmt)
			switch {
			case isComment && line == prevLine && prevSpan == 1:
				b.WriteString(" ")
				b.WriteString(rendered)
				continue
			case line > prevLine+prevSpan:
				b.WriteString("\n\n")
			default:
				b.WriteString("\n")
			}
		}
		b.WriteString(rendered)
		prevLine = line
		prevSpan = strings.Count(rendered, "\n") + 1
	}
	b.WriteString("\n")
	return b.String(), nil
}
