// Package dodo implements the Dodo language: a line-oriented integer
// language over scalars, vectors and matrices. It supports:
//   - Declarations: `scalar x`, `vector v[3]`, `matrix m[2, 2]`.
//   - Assignment with `=` and arithmetic with `+ - * /` and parentheses.
//   - Vector literals `{1, 2, 3}` and matrix literals `{{1, 2}, {3, 4}}`.
//   - Broadcasting a scalar over a vector with `*` and `/`, and the
//     sum-of-elementwise reduction for `vector * vector` and `vector / vector`.
//   - `print expr` to write a value on its own line.
//
// Statements end at a newline. Comments start with `#` and run to the end of
// the line. `for` blocks are parsed but not executed.
//
// The pipeline is Tokenize → Parse → Interpreter.Interpret. An Interpreter
// owns one flat Environment that persists across runs, which is what the
// REPL relies on.
package dodo
