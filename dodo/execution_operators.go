package dodo

import (
	"errors"

	"fortio.org/log"
)

// Shape classifies a reduced operand.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeScalar
	ShapeVector
	ShapeMatrix
	ShapeError
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeVector:
		return "vector"
	case ShapeMatrix:
		return "matrix"
	case ShapeError:
		return "error"
	default:
		return ""
	}
}

func shapeOf(expr Expression) Shape {
	switch expr.(type) {
	case *LiteralExpr:
		return ShapeScalar
	case *VectorExpr:
		return ShapeVector
	case *MatrixExpr:
		return ShapeMatrix
	default:
		return ShapeError
	}
}

type binaryKey struct {
	left  Shape
	right Shape
	op    TokenType
}

type binaryFn func(left, right Expression, pos Position) (Expression, error)

// binaryOps holds every defined (shape, shape, operator) combination. A
// missing entry is an unsupported operation.
var binaryOps = map[binaryKey]binaryFn{
	{ShapeScalar, ShapeScalar, tokenPlus}:     scalarScalar(tokenPlus),
	{ShapeScalar, ShapeScalar, tokenMinus}:    scalarScalar(tokenMinus),
	{ShapeScalar, ShapeScalar, tokenAsterisk}: scalarScalar(tokenAsterisk),
	{ShapeScalar, ShapeScalar, tokenSlash}:    scalarScalar(tokenSlash),

	{ShapeScalar, ShapeVector, tokenAsterisk}: scalarVector(tokenAsterisk),
	{ShapeScalar, ShapeVector, tokenSlash}:    scalarVector(tokenSlash),
	{ShapeVector, ShapeScalar, tokenAsterisk}: vectorScalar(tokenAsterisk),
	{ShapeVector, ShapeScalar, tokenSlash}:    vectorScalar(tokenSlash),

	{ShapeVector, ShapeVector, tokenAsterisk}: vectorVector(tokenAsterisk),
	{ShapeVector, ShapeVector, tokenSlash}:    vectorVector(tokenSlash),
}

// SupportsOperation reports whether op is defined for the operand shapes.
func SupportsOperation(left Shape, op string, right Shape) bool {
	_, ok := binaryOps[binaryKey{left, right, TokenType(op)}]
	return ok
}

func (in *Interpreter) evalBinary(e *BinaryExpr) (Expression, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	key := binaryKey{shapeOf(left), shapeOf(right), e.Operator}
	fn, ok := binaryOps[key]
	if !ok {
		log.LogVf("%s %s %s is not defined", key.left, e.Operator, key.right)
		return in.unsupported(e.Operator, key.left, key.right, e.Pos()), nil
	}
	result, err := fn(left, right, e.Pos())
	if err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			return nil, in.runtimeError(ErrDivisionByZero, e.Pos(), "division by zero")
		}
		return nil, err
	}
	return result, nil
}

// unsupported is the outcome of an undefined operation: 0 by default, an
// UnsupportedExpr in strict mode.
func (in *Interpreter) unsupported(op TokenType, left, right Shape, pos Position) Expression {
	if in.config.Strict {
		return &UnsupportedExpr{Operator: op, Left: left, Right: right, position: pos}
	}
	return &LiteralExpr{Value: 0, position: pos}
}

func scalarScalar(op TokenType) binaryFn {
	return func(left, right Expression, pos Position) (Expression, error) {
		v, err := applyInt(op, left.(*LiteralExpr).Value, right.(*LiteralExpr).Value)
		if err != nil {
			return nil, err
		}
		return &LiteralExpr{Value: v, position: pos}, nil
	}
}

func scalarVector(op TokenType) binaryFn {
	return func(left, right Expression, pos Position) (Expression, error) {
		s := left.(*LiteralExpr).Value
		elems := right.(*VectorExpr).Elements
		out := make([]int64, len(elems))
		for i, v := range elems {
			r, err := applyInt(op, s, v)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return &VectorExpr{Elements: out, position: pos}, nil
	}
}

func vectorScalar(op TokenType) binaryFn {
	return func(left, right Expression, pos Position) (Expression, error) {
		elems := left.(*VectorExpr).Elements
		s := right.(*LiteralExpr).Value
		out := make([]int64, len(elems))
		for i, v := range elems {
			r, err := applyInt(op, v, s)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return &VectorExpr{Elements: out, position: pos}, nil
	}
}

// vectorVector combines elementwise and sums the results, over the length of
// the shorter vector. For '/' this is the sum of the elementwise quotients.
func vectorVector(op TokenType) binaryFn {
	return func(left, right Expression, pos Position) (Expression, error) {
		l := left.(*VectorExpr).Elements
		r := right.(*VectorExpr).Elements
		n := min(len(l), len(r))
		var sum int64
		for i := range n {
			v, err := applyInt(op, l[i], r[i])
			if err != nil {
				return nil, err
			}
			sum += v
		}
		return &LiteralExpr{Value: sum, position: pos}, nil
	}
}

func applyInt(op TokenType, a, b int64) (int64, error) {
	switch op {
	case tokenPlus:
		return a + b, nil
	case tokenMinus:
		return a - b, nil
	case tokenAsterisk:
		return a * b, nil
	case tokenSlash:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, ErrUnsupported
	}
}
