package dodo

import (
	"fmt"
	"slices"

	"fortio.org/log"
)

func (in *Interpreter) execute(stmt Statement) error {
	switch s := stmt.(type) {
	case *DefinitionStmt:
		in.define(s)
		return nil
	case *ExpressionStmt:
		if dropped(s.Expr) {
			return nil
		}
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		if unreduced, ok := val.(*ErrExpr); ok {
			log.Warnf("cannot evaluate %s at %d:%d: %s", s.Expr.String(), s.Pos().Line, s.Pos().Column, unreduced.Reason)
			return nil
		}
		return in.checkSupported(val)
	case *PrintStmt:
		if dropped(s.Expr) {
			return nil
		}
		val, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		if unreduced, ok := val.(*ErrExpr); ok {
			log.Warnf("cannot print %s at %d:%d: %s", s.Expr.String(), s.Pos().Line, s.Pos().Column, unreduced.Reason)
			return nil
		}
		if err := in.checkSupported(val); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.out, val.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	case *ForStmt:
		log.LogVf("for loop at line %d is not executed", s.Pos().Line)
		return nil
	case *FunctionStmt:
		log.LogVf("function %s at line %d is not executed", s.Name.Literal, s.Pos().Line)
		return nil
	case *CommentStmt:
		return nil
	default:
		return fmt.Errorf("unsupported statement %T", stmt)
	}
}

// dropped reports whether expr is a parse-time placeholder that is skipped
// instead of evaluated.
func dropped(expr Expression) bool {
	errExpr, ok := expr.(*ErrExpr)
	if !ok {
		return false
	}
	log.Warnf("skipping %s at %d:%d: %s", errExpr.String(), errExpr.Pos().Line, errExpr.Pos().Column, errExpr.Reason)
	return true
}

func (in *Interpreter) define(s *DefinitionStmt) {
	var size int
	switch s.Kind() {
	case KindVector:
		size = s.Size1
	case KindMatrix:
		// Storage is sized by the column count; the row count is not used.
		size = s.Size2
	default:
		size = 1
	}
	log.LogVf("define %s %s with %d element(s)", s.Kind(), s.Name.Literal, size)
	in.env.Define(s.Name.Literal, s.Kind(), make([]int64, size))
}

func (in *Interpreter) checkSupported(val Expression) error {
	unsupported, ok := val.(*UnsupportedExpr)
	if !ok {
		return nil
	}
	if unsupported.Left == ShapeNone {
		return in.runtimeError(ErrUnsupported, unsupported.Pos(), "unsupported operation %s%s", unsupported.Operator, unsupported.Right)
	}
	return in.runtimeError(ErrUnsupported, unsupported.Pos(), "unsupported operation %s %s %s", unsupported.Left, unsupported.Operator, unsupported.Right)
}

func (in *Interpreter) evaluate(expr Expression) (Expression, error) {
	switch e := expr.(type) {
	case *LiteralExpr, *VectorExpr, *MatrixExpr, *ErrExpr, *UnsupportedExpr:
		return e, nil
	case *GroupingExpr:
		return in.evaluate(e.Inner)
	case *UnaryExpr:
		return in.evalUnary(e)
	case *BinaryExpr:
		return in.evalBinary(e)
	case *AssignExpr:
		return in.evalAssign(e)
	case *VariableExpr:
		return in.evalVariable(e)
	case *GetExpr:
		return &ErrExpr{Reason: "member access is not supported", Source: e.String(), position: e.Pos()}, nil
	case *SetExpr:
		return &ErrExpr{Reason: "member assignment is not supported", Source: e.String(), position: e.Pos()}, nil
	case *CallExpr:
		return &ErrExpr{Reason: "function calls are not supported", Source: e.String(), position: e.Pos()}, nil
	case nil:
		return &ErrExpr{Reason: "missing expression"}, nil
	default:
		return &ErrExpr{Reason: fmt.Sprintf("unknown expression %T", expr), position: expr.Pos()}, nil
	}
}

func (in *Interpreter) evalUnary(e *UnaryExpr) (Expression, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	if lit, ok := right.(*LiteralExpr); ok && e.Operator == tokenMinus {
		return &LiteralExpr{Value: -lit.Value, position: e.Pos()}, nil
	}
	return in.unsupported(e.Operator, ShapeNone, shapeOf(right), e.Pos()), nil
}

func (in *Interpreter) evalAssign(e *AssignExpr) (Expression, error) {
	val, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	switch v := val.(type) {
	case *VectorExpr:
		in.store(e.Name, slices.Clone(v.Elements))
		return v, nil
	case *LiteralExpr:
		in.store(e.Name, []int64{v.Value})
		return v, nil
	default:
		log.LogVf("%s not stored in %s", val.String(), e.Name.Literal)
		return val, nil
	}
}

func (in *Interpreter) store(name Token, values []int64) {
	if !in.env.Assign(name.Literal, values) {
		log.LogVf("assignment to undeclared %s at %d:%d ignored", name.Literal, name.Pos.Line, name.Pos.Column)
		return
	}
	log.LogVf("assign %s = %v", name.Literal, values)
}

func (in *Interpreter) evalVariable(e *VariableExpr) (Expression, error) {
	vals, ok := in.env.Get(e.Name.Literal)
	if !ok {
		return nil, in.runtimeError(ErrUndefinedVariable, e.Pos(), "undefined variable %s", e.Name.Literal)
	}
	switch len(vals) {
	case 0:
		return nil, in.runtimeError(ErrEmptyValue, e.Pos(), "variable %s holds no elements", e.Name.Literal)
	case 1:
		return &LiteralExpr{Value: vals[0], position: e.Pos()}, nil
	default:
		return &VectorExpr{Name: e.Name, Elements: slices.Clone(vals), position: e.Pos()}, nil
	}
}
