package main

import (
	"bytes"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/dodolang/dodo/dodo"
)

// replSession is the interpreter state shared by both REPL front ends.
type replSession struct {
	interp *dodo.Interpreter
	output *bytes.Buffer
}

func newREPLSession(strict bool) *replSession {
	output := new(bytes.Buffer)
	return &replSession{
		interp: dodo.NewInterpreter(dodo.Config{Strict: strict, Output: output}),
		output: output,
	}
}

// evaluate runs one line. A lone expression reports its value; anything else
// reports what it printed.
func (s *replSession) evaluate(input string) (string, bool) {
	s.output.Reset()
	program, err := s.interp.Parse(input + "\n")
	if err != nil {
		return firstParseMessage(err), true
	}

	if len(program.Statements) == 1 {
		if stmt, ok := program.Statements[0].(*dodo.ExpressionStmt); ok {
			return s.evaluateExpression(stmt.Expr)
		}
	}

	if err := s.interp.Interpret(program); err != nil {
		return err.Error(), true
	}
	printed := strings.TrimRight(s.output.String(), "\n")
	if printed == "" {
		return "ok", false
	}
	return printed, false
}

func (s *replSession) evaluateExpression(expr dodo.Expression) (string, bool) {
	val, err := s.interp.Evaluate(expr)
	if err != nil {
		return err.Error(), true
	}
	switch v := val.(type) {
	case *dodo.ErrExpr:
		return v.Reason, true
	case *dodo.UnsupportedExpr:
		return v.String(), true
	}
	return val.String(), false
}

func firstParseMessage(err error) string {
	var parseErrs dodo.ParseErrors
	if errors.As(err, &parseErrs) && len(parseErrs) > 0 {
		return parseErrs[0].Msg
	}
	return err.Error()
}

func (s *replSession) reset() {
	s.interp.Reset()
	s.output.Reset()
}

// variables renders every binding as "kind name = value", sorted by name.
func (s *replSession) variables() []string {
	env := s.interp.Env()
	snapshot := env.Snapshot()
	lines := make([]string, 0, len(snapshot))
	for _, name := range env.Names() {
		lines = append(lines, env.Kind(name).String()+" "+name+" = "+formatBinding(snapshot[name]))
	}
	return lines
}

func formatBinding(values []int64) string {
	if len(values) == 1 {
		return strconv.FormatInt(values[0], 10)
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// completions returns keywords and declared names starting with prefix.
func (s *replSession) completions(prefix string) []string {
	var out []string
	for _, kw := range dodo.Keywords() {
		if strings.HasPrefix(kw, prefix) {
			out = append(out, kw)
		}
	}
	for _, name := range s.interp.Env().Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
