package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/dodolang/dodo/dodo"
)

const (
	plainBanner = "Dodo REPL. Type :help for commands, :quit to exit."
	promptCont  = "... "
)

func runPlainREPL(opts replOptions, historyPath string) error {
	fmt.Println(plainBanner)

	session := newREPLSession(opts.Strict)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		idx := strings.LastIndexAny(line, " \t(=+-*/{,") + 1
		prefix := line[:idx]
		var out []string
		for _, c := range session.completions(line[idx:]) {
			out = append(out, prefix+c)
		}
		return out
	})

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warnf("read history %s: %v", historyPath, err)
			}
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(historyPath)
			if err != nil {
				log.Warnf("write history %s: %v", historyPath, err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		code, err := readBlock(ln, opts.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		out, quit := handlePlainLine(session, code)
		if out != "" {
			fmt.Println(out)
		}
		if quit {
			return nil
		}
	}
}

// readBlock reads one line, continuing while a for body is still open.
func readBlock(ln *liner.State, prompt string) (string, error) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = promptCont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if braceDepth(b.String()) <= 0 {
			return b.String(), nil
		}
	}
}

func braceDepth(source string) int {
	depth := 0
	for _, tok := range dodo.Tokenize(source) {
		switch tok.Type {
		case "{":
			depth++
		case "}":
			depth--
		}
	}
	return depth
}

// handlePlainLine runs a REPL command or statement and returns what to show.
func handlePlainLine(session *replSession, code string) (string, bool) {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, ":") {
		out, isErr := session.evaluate(code)
		if isErr {
			return "error: " + out, false
		}
		return out, false
	}

	switch strings.Fields(trimmed)[0] {
	case ":quit", ":q":
		return "", true
	case ":reset", ":r":
		session.reset()
		return "Environment reset", false
	case ":vars", ":v":
		vars := session.variables()
		if len(vars) == 0 {
			return "No variables defined", false
		}
		return strings.Join(vars, "\n"), false
	case ":help", ":h":
		lines := make([]string, 0, len(replHelp))
		for _, h := range replHelp {
			lines = append(lines, fmt.Sprintf("  %-8s %s", h.key, h.desc))
		}
		return strings.Join(lines, "\n"), false
	default:
		return fmt.Sprintf("unknown command %s. Type :quit to exit.", trimmed), false
	}
}
