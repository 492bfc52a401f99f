package dodo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrEmptyValue        = errors.New("empty value")
	ErrUnsupported       = errors.New("unsupported operation")
)

// ParseError reports a single malformed construct.
type ParseError struct {
	Pos    Position
	Msg    string
	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// ParseErrors is returned by Parse when one or more statements were
// malformed.
type ParseErrors []*ParseError

func (errs ParseErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n\n")
}

func (errs ParseErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = err
	}
	return out
}

// RuntimeError is a fault raised while executing a program. It terminates
// the run.
type RuntimeError struct {
	Kind      error
	Message   string
	Pos       Position
	CodeFrame string
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	if re.Pos.Line > 0 {
		fmt.Fprintf(&b, "runtime error at %d:%d: %s", re.Pos.Line, re.Pos.Column, re.Message)
	} else {
		fmt.Fprintf(&b, "runtime error: %s", re.Message)
	}
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	return b.String()
}

func (re *RuntimeError) Unwrap() error {
	return re.Kind
}
