package dodo

import (
	"strconv"
	"strings"
)

type Node interface {
	Pos() Position
	String() string
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// DeclKind is the declared shape of a variable.
type DeclKind int

const (
	KindUnknown DeclKind = iota
	KindScalar
	KindVector
	KindMatrix
)

func (k DeclKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

func declKindFor(tt TokenType) DeclKind {
	switch tt {
	case tokenScalar:
		return KindScalar
	case tokenVector:
		return KindVector
	case tokenMatrix:
		return KindMatrix
	default:
		return KindUnknown
	}
}

type Program struct {
	Statements []Statement
}

func (p *Program) Pos() Position {
	if len(p.Statements) == 0 {
		return Position{}
	}
	return p.Statements[0].Pos()
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	return b.String()
}

// DefinitionStmt declares a scalar, vector or matrix. Size1 is the vector
// length or matrix row count; Size2 is the matrix column count.
type DefinitionStmt struct {
	Decl  Token
	Name  Token
	Size1 int
	Size2 int
}

func (s *DefinitionStmt) stmtNode()     {}
func (s *DefinitionStmt) Pos() Position { return s.Decl.Pos }

// Kind returns the declared shape.
func (s *DefinitionStmt) Kind() DeclKind { return declKindFor(s.Decl.Type) }

func (s *DefinitionStmt) String() string {
	switch s.Kind() {
	case KindVector:
		return "vector " + s.Name.Literal + "[" + strconv.Itoa(s.Size1) + "]"
	case KindMatrix:
		return "matrix " + s.Name.Literal + "[" + strconv.Itoa(s.Size1) + ", " + strconv.Itoa(s.Size2) + "]"
	default:
		return "scalar " + s.Name.Literal
	}
}

type ExpressionStmt struct {
	Expr     Expression
	position Position
}

func (s *ExpressionStmt) stmtNode()      {}
func (s *ExpressionStmt) Pos() Position  { return s.position }
func (s *ExpressionStmt) String() string { return s.Expr.String() }

type PrintStmt struct {
	Expr     Expression
	position Position
}

func (s *PrintStmt) stmtNode()      {}
func (s *PrintStmt) Pos() Position  { return s.position }
func (s *PrintStmt) String() string { return "print " + s.Expr.String() }

// ForStmt is recognised by the parser but never executed.
type ForStmt struct {
	Condition Expression
	Body      []Statement
	position  Position
}

func (s *ForStmt) stmtNode()     {}
func (s *ForStmt) Pos() Position { return s.position }

func (s *ForStmt) String() string {
	var b strings.Builder
	b.WriteString("for ")
	b.WriteString(s.Condition.String())
	b.WriteString(" {\n")
	for _, stmt := range s.Body {
		for _, line := range strings.Split(stmt.String(), "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

// FunctionStmt is an AST extension point. The parser does not produce it and
// the interpreter does not execute it.
type FunctionStmt struct {
	Name     Token
	Params   []Token
	Body     []Statement
	position Position
}

func (s *FunctionStmt) stmtNode()     {}
func (s *FunctionStmt) Pos() Position { return s.position }

func (s *FunctionStmt) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Literal
	}
	return s.Name.Literal + "(" + strings.Join(params, ", ") + ")"
}

type CommentStmt struct {
	Text     string
	position Position
}

func (s *CommentStmt) stmtNode()      {}
func (s *CommentStmt) Pos() Position  { return s.position }
func (s *CommentStmt) String() string { return "#" + s.Text }

type LiteralExpr struct {
	Value    int64
	position Position
}

func (e *LiteralExpr) exprNode()      {}
func (e *LiteralExpr) Pos() Position  { return e.position }
func (e *LiteralExpr) String() string { return strconv.FormatInt(e.Value, 10) }

type GroupingExpr struct {
	Inner    Expression
	position Position
}

func (e *GroupingExpr) exprNode()      {}
func (e *GroupingExpr) Pos() Position  { return e.position }
func (e *GroupingExpr) String() string { return "(" + e.Inner.String() + ")" }

// VectorExpr is a vector value. Name is set when the vector was read from a
// variable and is the zero Token for literals.
type VectorExpr struct {
	Name     Token
	Elements []int64
	position Position
}

func (e *VectorExpr) exprNode()      {}
func (e *VectorExpr) Pos() Position  { return e.position }
func (e *VectorExpr) String() string { return formatElements(e.Elements) }

type MatrixExpr struct {
	Rows     [][]int64
	position Position
}

func (e *MatrixExpr) exprNode()     {}
func (e *MatrixExpr) Pos() Position { return e.position }

func (e *MatrixExpr) String() string {
	rows := make([]string, len(e.Rows))
	for i, row := range e.Rows {
		rows[i] = formatElements(row)
	}
	return "{" + strings.Join(rows, ", ") + "}"
}

type VariableExpr struct {
	Name Token
	Kind DeclKind
}

func (e *VariableExpr) exprNode()      {}
func (e *VariableExpr) Pos() Position  { return e.Name.Pos }
func (e *VariableExpr) String() string { return e.Name.Literal }

type UnaryExpr struct {
	Operator TokenType
	Right    Expression
	position Position
}

func (e *UnaryExpr) exprNode()      {}
func (e *UnaryExpr) Pos() Position  { return e.position }
func (e *UnaryExpr) String() string { return string(e.Operator) + e.Right.String() }

type BinaryExpr struct {
	Left     Expression
	Operator TokenType
	Right    Expression
	position Position
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.position }

func (e *BinaryExpr) String() string {
	return e.Left.String() + " " + string(e.Operator) + " " + e.Right.String()
}

type AssignExpr struct {
	Name  Token
	Value Expression
	Kind  DeclKind
}

func (e *AssignExpr) exprNode()      {}
func (e *AssignExpr) Pos() Position  { return e.Name.Pos }
func (e *AssignExpr) String() string { return e.Name.Literal + " = " + e.Value.String() }

// GetExpr and SetExpr model member access on structured values. Nothing in
// the current grammar produces a GetExpr.
type GetExpr struct {
	Object Expression
	Name   Token
}

func (e *GetExpr) exprNode()      {}
func (e *GetExpr) Pos() Position  { return e.Name.Pos }
func (e *GetExpr) String() string { return e.Object.String() + "." + e.Name.Literal }

type SetExpr struct {
	Object Expression
	Name   Token
	Value  Expression
}

func (e *SetExpr) exprNode()     {}
func (e *SetExpr) Pos() Position { return e.Name.Pos }

func (e *SetExpr) String() string {
	return e.Object.String() + "." + e.Name.Literal + " = " + e.Value.String()
}

type CallExpr struct {
	Callee   Expression
	Args     []Expression
	position Position
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Pos() Position { return e.position }

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// ErrExpr stands in for an expression that could not be built or reduced.
type ErrExpr struct {
	Reason   string
	Source   string
	position Position
}

func (e *ErrExpr) exprNode()     {}
func (e *ErrExpr) Pos() Position { return e.position }

func (e *ErrExpr) String() string {
	if e.Source != "" {
		return e.Source
	}
	return "<error: " + e.Reason + ">"
}

// UnsupportedExpr is the strict-mode result of an operator applied to operand
// shapes it has no definition for.
type UnsupportedExpr struct {
	Operator TokenType
	Left     Shape
	Right    Shape
	position Position
}

func (e *UnsupportedExpr) exprNode()     {}
func (e *UnsupportedExpr) Pos() Position { return e.position }

func (e *UnsupportedExpr) String() string {
	if e.Left == ShapeNone {
		return "<unsupported " + string(e.Operator) + e.Right.String() + ">"
	}
	return "<unsupported " + e.Left.String() + " " + string(e.Operator) + " " + e.Right.String() + ">"
}

func formatElements(elems []int64) string {
	parts := make([]string, len(elems))
	for i, v := range elems {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
