package dodo

import (
	"strconv"

	"fortio.org/log"
)

const (
	maxCallArgs = 255
	// maxDefinitionSize bounds the storage a single definition may allocate.
	maxDefinitionSize = 1 << 20
)

type parser struct {
	tokens  []Token
	current int
	source  string

	kinds  map[string]DeclKind
	errors []*ParseError
}

func newParser(tokens []Token, source string, kinds map[string]DeclKind) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != tokenEOF {
		eof := Token{Type: tokenEOF}
		if len(tokens) > 0 {
			eof.Pos = tokens[len(tokens)-1].Pos
		}
		tokens = append(tokens[:len(tokens):len(tokens)], eof)
	}
	p := &parser{
		tokens: tokens,
		source: source,
		kinds:  make(map[string]DeclKind, len(kinds)),
	}
	for name, kind := range kinds {
		p.kinds[name] = kind
	}
	return p
}

// Parse lexes and parses source. When some statements are malformed the
// returned error is a ParseErrors and the program holds every statement that
// parsed cleanly.
func Parse(source string) (*Program, error) {
	return parseSource(source, nil)
}

// ParseTokens parses an already lexed token sequence.
func ParseTokens(tokens []Token) (*Program, error) {
	p := newParser(tokens, "", nil)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		return program, ParseErrors(errs)
	}
	return program, nil
}

func parseSource(source string, kinds map[string]DeclKind) (*Program, error) {
	p := newParser(Tokenize(source), source, kinds)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		return program, ParseErrors(errs)
	}
	return program, nil
}

func (p *parser) ParseProgram() (*Program, []*ParseError) {
	program := &Program{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, p.errors
}

func (p *parser) declaration() Statement {
	before := len(p.errors)
	var stmt Statement
	if isDeclarationKeyword(p.peek().Type) {
		stmt = p.definition()
	} else {
		stmt = p.statement()
	}
	if len(p.errors) > before {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) definition() Statement {
	decl := p.advance()
	name, ok := p.consume(tokenIdent, "variable name")
	if !ok {
		return nil
	}
	stmt := &DefinitionStmt{Decl: decl, Name: name}

	switch decl.Type {
	case tokenVector:
		if _, ok := p.consume(tokenLBracket, "'['"); !ok {
			return nil
		}
		if stmt.Size1, ok = p.sizeArg(); !ok {
			return nil
		}
		if _, ok := p.consume(tokenRBracket, "']'"); !ok {
			return nil
		}
	case tokenMatrix:
		if _, ok := p.consume(tokenLBracket, "'['"); !ok {
			return nil
		}
		if stmt.Size1, ok = p.sizeArg(); !ok {
			return nil
		}
		if _, ok := p.consume(tokenComma, "','"); !ok {
			return nil
		}
		if stmt.Size2, ok = p.sizeArg(); !ok {
			return nil
		}
		if _, ok := p.consume(tokenRBracket, "']'"); !ok {
			return nil
		}
	}

	if !p.consumeEnd() {
		return nil
	}
	p.kinds[name.Literal] = stmt.Kind()
	return stmt
}

func (p *parser) sizeArg() (int, bool) {
	tok, ok := p.consume(tokenInt, "size")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil || n > maxDefinitionSize {
		p.addParseError(tok.Pos, "size "+tok.Literal+" out of range")
		return 0, false
	}
	return n, true
}

func (p *parser) statement() Statement {
	switch p.peek().Type {
	case tokenNewLine:
		p.advance()
		return nil
	case tokenPrint:
		return p.printStatement()
	case tokenFor:
		return p.forStatement()
	case tokenComment:
		return p.commentStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() Statement {
	keyword := p.advance()
	expr := p.expression()
	if expr == nil || !p.consumeEnd() {
		return nil
	}
	return &PrintStmt{Expr: expr, position: keyword.Pos}
}

func (p *parser) forStatement() Statement {
	keyword := p.advance()
	cond := p.expression()
	if cond == nil {
		return nil
	}
	if _, ok := p.consume(tokenLBrace, "'{'"); !ok {
		return nil
	}
	if !p.consumeEnd() {
		return nil
	}

	stmt := &ForStmt{Condition: cond, position: keyword.Pos}
	for !p.check(tokenRBrace) && !p.isAtEnd() {
		if body := p.declaration(); body != nil {
			stmt.Body = append(stmt.Body, body)
		}
	}
	if _, ok := p.consume(tokenRBrace, "'}'"); !ok {
		return nil
	}
	if !p.consumeEnd() {
		return nil
	}
	return stmt
}

func (p *parser) commentStatement() Statement {
	tok := p.advance()
	if !p.consumeEnd() {
		return nil
	}
	return &CommentStmt{Text: tok.Literal, position: tok.Pos}
}

func (p *parser) expressionStatement() Statement {
	start := p.peek().Pos
	expr := p.expression()
	if expr == nil || !p.consumeEnd() {
		return nil
	}
	return &ExpressionStmt{Expr: expr, position: start}
}

func (p *parser) expression() Expression {
	return p.assignment()
}

func (p *parser) assignment() Expression {
	expr := p.addition()
	if expr == nil {
		return nil
	}
	if !p.match(tokenAssign) {
		return expr
	}

	value := p.assignment()
	if value == nil {
		return nil
	}
	switch target := expr.(type) {
	case *VariableExpr:
		return &AssignExpr{Name: target.Name, Value: value, Kind: target.Kind}
	case *GetExpr:
		return &SetExpr{Object: target.Object, Name: target.Name, Value: value}
	default:
		return &ErrExpr{
			Reason:   "invalid assignment target",
			Source:   expr.String() + " = " + value.String(),
			position: expr.Pos(),
		}
	}
}

func (p *parser) addition() Expression {
	expr := p.multiplication()
	for expr != nil && p.match(tokenPlus, tokenMinus) {
		operator := p.previous()
		right := p.multiplication()
		if right == nil {
			return nil
		}
		expr = &BinaryExpr{Left: expr, Operator: operator.Type, Right: right, position: operator.Pos}
	}
	return expr
}

func (p *parser) multiplication() Expression {
	expr := p.unary()
	for expr != nil && p.match(tokenAsterisk, tokenSlash) {
		operator := p.previous()
		right := p.unary()
		if right == nil {
			return nil
		}
		expr = &BinaryExpr{Left: expr, Operator: operator.Type, Right: right, position: operator.Pos}
	}
	return expr
}

func (p *parser) unary() Expression {
	if p.match(tokenMinus, tokenBang) {
		operator := p.previous()
		right := p.unary()
		if right == nil {
			return nil
		}
		return &UnaryExpr{Operator: operator.Type, Right: right, position: operator.Pos}
	}
	return p.call()
}

func (p *parser) call() Expression {
	expr := p.primary()
	for expr != nil && p.match(tokenLParen) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *parser) finishCall(callee Expression) Expression {
	paren := p.previous()
	var args []Expression
	if !p.check(tokenRParen) {
		for {
			if len(args) >= maxCallArgs {
				p.addParseError(p.peek().Pos, "cannot have more than 255 arguments")
				return nil
			}
			arg := p.expression()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.match(tokenComma) {
				break
			}
		}
	}
	if _, ok := p.consume(tokenRParen, "')' after arguments"); !ok {
		return nil
	}
	return &CallExpr{Callee: callee, Args: args, position: paren.Pos}
}

func (p *parser) primary() Expression {
	tok := p.peek()
	switch tok.Type {
	case tokenInt:
		p.advance()
		value, ok := p.intLiteral(tok)
		if !ok {
			return nil
		}
		return &LiteralExpr{Value: value, position: tok.Pos}
	case tokenIdent:
		p.advance()
		return &VariableExpr{Name: tok, Kind: p.kinds[tok.Literal]}
	case tokenLParen:
		p.advance()
		inner := p.expression()
		if inner == nil {
			return nil
		}
		if _, ok := p.consume(tokenRParen, "')'"); !ok {
			return nil
		}
		return &GroupingExpr{Inner: inner, position: tok.Pos}
	case tokenLBrace:
		p.advance()
		return p.braceLiteral(tok)
	default:
		p.errorUnexpected(tok)
		return nil
	}
}

// braceLiteral parses `{1, 2, 3}` into a vector and `{{1, 2}, {3, 4}}` into
// a matrix. Commas between elements and rows are optional.
func (p *parser) braceLiteral(open Token) Expression {
	if !p.check(tokenLBrace) {
		elems, ok := p.intList()
		if !ok {
			return nil
		}
		if _, ok := p.consume(tokenRBrace, "'}'"); !ok {
			return nil
		}
		return &VectorExpr{Elements: elems, position: open.Pos}
	}

	var rows [][]int64
	for p.match(tokenLBrace) {
		row, ok := p.intList()
		if !ok {
			return nil
		}
		if _, ok := p.consume(tokenRBrace, "'}'"); !ok {
			return nil
		}
		rows = append(rows, row)
		p.match(tokenComma)
	}
	if _, ok := p.consume(tokenRBrace, "'}'"); !ok {
		return nil
	}
	return &MatrixExpr{Rows: rows, position: open.Pos}
}

func (p *parser) intList() ([]int64, bool) {
	elems := []int64{}
	for p.check(tokenInt) {
		tok := p.advance()
		value, ok := p.intLiteral(tok)
		if !ok {
			return nil, false
		}
		elems = append(elems, value)
		p.match(tokenComma)
	}
	return elems, true
}

func (p *parser) intLiteral(tok Token) (int64, bool) {
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.addParseError(tok.Pos, "integer literal "+tok.Literal+" out of range")
		return 0, false
	}
	return value, true
}

// synchronize discards tokens until the next statement boundary: just past a
// newline, or at a keyword that starts a statement.
func (p *parser) synchronize() {
	skipped := 0
	defer func() {
		if skipped > 0 {
			log.Debugf("parser: skipped %d token(s) after parse error", skipped)
		}
	}()
	for !p.isAtEnd() {
		switch p.peek().Type {
		case tokenNewLine:
			p.advance()
			skipped++
			return
		case tokenScalar, tokenVector, tokenMatrix, tokenPrint, tokenFor:
			return
		}
		p.advance()
		skipped++
	}
}

// consumeEnd accepts the end of a statement: a newline (consumed), the end
// of input, or a trailing comment which is left for the next statement.
func (p *parser) consumeEnd() bool {
	switch p.peek().Type {
	case tokenNewLine:
		p.advance()
		return true
	case tokenEOF, tokenComment:
		return true
	default:
		p.errorExpected(p.peek(), "end of line")
		return false
	}
}

func (p *parser) consume(tt TokenType, expected string) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.errorExpected(p.peek(), expected)
	return Token{}, false
}

func (p *parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == tokenEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
