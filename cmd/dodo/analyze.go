package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/dodolang/dodo/dodo"
)

type lintWarning struct {
	Pos     dodo.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("dodo analyze: script path required")
	}

	input, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	program, err := dodo.Parse(input)
	if err != nil {
		return fmt.Errorf("analysis parse failed: %w", err)
	}

	warnings := analyzeProgram(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s\n", remaining[0], line, column, warning.Message)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzer walks a program in execution order, tracking the shape each
// declared name is known to hold.
type analyzer struct {
	shapes   map[string]dodo.Shape
	warnings []lintWarning
}

func analyzeProgram(program *dodo.Program) []lintWarning {
	a := &analyzer{shapes: make(map[string]dodo.Shape)}
	if program != nil {
		for _, stmt := range program.Statements {
			a.statement(stmt)
		}
	}

	sort.SliceStable(a.warnings, func(i, j int) bool {
		if a.warnings[i].Pos.Line != a.warnings[j].Pos.Line {
			return a.warnings[i].Pos.Line < a.warnings[j].Pos.Line
		}
		return a.warnings[i].Pos.Column < a.warnings[j].Pos.Column
	})
	return a.warnings
}

func (a *analyzer) warn(pos dodo.Position, format string, args ...any) {
	a.warnings = append(a.warnings, lintWarning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (a *analyzer) statement(stmt dodo.Statement) {
	switch s := stmt.(type) {
	case *dodo.DefinitionStmt:
		name := s.Name.Literal
		if _, ok := a.shapes[name]; ok {
			a.warn(s.Name.Pos, "redeclaration of %s resets its value", name)
		}
		a.shapes[name] = declaredShape(s)
		if s.Kind() == dodo.KindMatrix && s.Size1 != 1 {
			a.warn(s.Pos(), "matrix %s stores %d element(s); the row count %d is ignored", name, s.Size2, s.Size1)
		}
	case *dodo.ExpressionStmt:
		a.expression(s.Expr)
	case *dodo.PrintStmt:
		a.expression(s.Expr)
	case *dodo.ForStmt:
		a.warn(s.Pos(), "for loop is never executed")
	case *dodo.FunctionStmt:
		a.warn(s.Pos(), "function %s is never executed", s.Name.Literal)
	}
}

func declaredShape(def *dodo.DefinitionStmt) dodo.Shape {
	size := 1
	switch def.Kind() {
	case dodo.KindVector:
		size = def.Size1
	case dodo.KindMatrix:
		size = def.Size2
	}
	return shapeForLength(size)
}

func shapeForLength(n int) dodo.Shape {
	switch {
	case n == 1:
		return dodo.ShapeScalar
	case n > 1:
		return dodo.ShapeVector
	default:
		return dodo.ShapeError
	}
}

// expression reports problems in expr and returns the shape it reduces to,
// or ShapeNone when that cannot be known without running it.
func (a *analyzer) expression(expr dodo.Expression) dodo.Shape {
	switch e := expr.(type) {
	case *dodo.LiteralExpr:
		return dodo.ShapeScalar
	case *dodo.VectorExpr:
		return dodo.ShapeVector
	case *dodo.MatrixExpr:
		return dodo.ShapeMatrix
	case *dodo.GroupingExpr:
		return a.expression(e.Inner)
	case *dodo.VariableExpr:
		shape, ok := a.shapes[e.Name.Literal]
		if !ok {
			a.warn(e.Pos(), "use of undeclared variable %s", e.Name.Literal)
			return dodo.ShapeNone
		}
		if shape == dodo.ShapeError {
			a.warn(e.Pos(), "variable %s holds no elements", e.Name.Literal)
			return dodo.ShapeNone
		}
		return shape
	case *dodo.AssignExpr:
		value := a.expression(e.Value)
		name := e.Name.Literal
		if _, ok := a.shapes[name]; !ok {
			a.warn(e.Pos(), "assignment to undeclared variable %s is ignored", name)
			return value
		}
		if lit, ok := e.Value.(*dodo.VectorExpr); ok {
			a.shapes[name] = shapeForLength(len(lit.Elements))
			return value
		}
		switch value {
		case dodo.ShapeScalar, dodo.ShapeVector:
			a.shapes[name] = value
		case dodo.ShapeMatrix:
			a.warn(e.Pos(), "matrix value is not stored in %s", name)
		}
		return value
	case *dodo.UnaryExpr:
		right := a.expression(e.Right)
		if e.Operator != "-" {
			a.warn(e.Pos(), "%s always evaluates to 0", e.String())
			return dodo.ShapeScalar
		}
		if right != dodo.ShapeNone && right != dodo.ShapeScalar {
			a.warn(e.Pos(), "negating a %s always evaluates to 0", right)
		}
		return dodo.ShapeScalar
	case *dodo.BinaryExpr:
		return a.binary(e)
	case *dodo.ErrExpr:
		a.warn(e.Pos(), "%s: statement is skipped", e.Reason)
		return dodo.ShapeNone
	case *dodo.CallExpr:
		a.warn(e.Pos(), "call to %s is never evaluated", e.Callee.String())
		return dodo.ShapeNone
	case *dodo.GetExpr, *dodo.SetExpr:
		a.warn(e.Pos(), "property access is never evaluated")
		return dodo.ShapeNone
	default:
		return dodo.ShapeNone
	}
}

func (a *analyzer) binary(e *dodo.BinaryExpr) dodo.Shape {
	left := a.expression(e.Left)
	right := a.expression(e.Right)
	op := string(e.Operator)

	if lit, ok := e.Right.(*dodo.LiteralExpr); ok && op == "/" && lit.Value == 0 {
		a.warn(e.Pos(), "division by zero")
	}
	if left == dodo.ShapeNone || right == dodo.ShapeNone {
		return dodo.ShapeNone
	}
	if !dodo.SupportsOperation(left, op, right) {
		a.warn(e.Pos(), "%s %s %s always evaluates to 0", left, op, right)
		return dodo.ShapeScalar
	}
	if left == dodo.ShapeVector && right == dodo.ShapeVector {
		return dodo.ShapeScalar
	}
	if left == dodo.ShapeVector || right == dodo.ShapeVector {
		return dodo.ShapeVector
	}
	return dodo.ShapeScalar
}
