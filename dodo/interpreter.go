package dodo

import (
	"fmt"
	"io"
	"os"
)

// Config controls how an Interpreter reports output and unsupported
// operations.
type Config struct {
	// Strict surfaces operators applied to operand shapes they are not
	// defined for (vector + vector, -vector, ...) as runtime errors. When
	// false such operations evaluate to 0.
	Strict bool
	// Output receives the text written by print statements. Defaults to
	// os.Stdout.
	Output io.Writer
}

// Interpreter executes programs against a single Environment. Bindings
// persist across calls to Run and Interpret until Reset.
type Interpreter struct {
	config Config
	env    *Environment
	out    io.Writer
	source string
}

func NewInterpreter(cfg Config) *Interpreter {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		config: cfg,
		env:    NewEnvironment(),
		out:    out,
	}
}

func (in *Interpreter) Env() *Environment {
	return in.env
}

func (in *Interpreter) Strict() bool {
	return in.config.Strict
}

// Reset discards every binding.
func (in *Interpreter) Reset() {
	in.env.Reset()
}

// Parse parses source, tagging variables with the kinds already declared in
// this interpreter's environment.
func (in *Interpreter) Parse(source string) (*Program, error) {
	return parseSource(source, in.env.kinds)
}

// Run parses and executes source. Nothing is executed when source contains a
// parse error.
func (in *Interpreter) Run(source string) error {
	program, err := in.Parse(source)
	if err != nil {
		return err
	}
	in.source = source
	defer func() { in.source = "" }()
	return in.Interpret(program)
}

// Interpret executes every statement in order. The first runtime fault stops
// the run and is returned.
func (in *Interpreter) Interpret(program *Program) error {
	if program == nil {
		return nil
	}
	for _, stmt := range program.Statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate reduces expr to a LiteralExpr or VectorExpr. Expressions that
// cannot be reduced yield an ErrExpr; in strict mode undefined operations
// yield an UnsupportedExpr.
func (in *Interpreter) Evaluate(expr Expression) (Expression, error) {
	return in.evaluate(expr)
}

func (in *Interpreter) runtimeError(kind error, pos Position, format string, args ...any) error {
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Pos:       pos,
		CodeFrame: formatCodeFrame(in.source, pos),
	}
}
