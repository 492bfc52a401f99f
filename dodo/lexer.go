package dodo

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// Tokenize lexes the whole input. The returned slice always ends with an EOF
// token.
func Tokenize(input string) []Token {
	l := newLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens
		}
	}
}

func (l *lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.column++
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) atEnd() bool {
	return l.ch == 0 && l.width == 0
}

func (l *lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	if l.atEnd() {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case '\n':
		tok = l.makeToken(tokenNewLine, "\n")
		l.readRune()
	case '=':
		if l.peekRune() == '=' {
			tok = l.makeToken(tokenEQ, "==")
			l.readRune()
		} else {
			tok = l.makeToken(tokenAssign, "=")
		}
		l.readRune()
	case '!':
		if l.peekRune() == '=' {
			tok = l.makeToken(tokenNotEQ, "!=")
			l.readRune()
		} else {
			tok = l.makeToken(tokenBang, "!")
		}
		l.readRune()
	case '>':
		tok = l.makeToken(tokenGT, ">")
		l.readRune()
	case '<':
		tok = l.makeToken(tokenLT, "<")
		l.readRune()
	case '+':
		tok = l.makeToken(tokenPlus, "+")
		l.readRune()
	case '-':
		tok = l.makeToken(tokenMinus, "-")
		l.readRune()
	case '*':
		tok = l.makeToken(tokenAsterisk, "*")
		l.readRune()
	case '/':
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
		l.readRune()
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
		l.readRune()
	case '[':
		tok = l.makeToken(tokenLBracket, "[")
		l.readRune()
	case ']':
		tok = l.makeToken(tokenRBracket, "]")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case ':':
		tok = l.makeToken(tokenColon, ":")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case '#':
		tok.Type = tokenComment
		tok.Literal = l.readComment()
	case '"':
		literal, errMsg := l.readString()
		if errMsg != "" {
			tok.Type = tokenIllegal
			tok.Literal = errMsg
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	default:
		switch {
		case isLetter(l.ch):
			literal := l.readWhile(isLetter)
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case isDigit(l.ch):
			tok.Type = tokenInt
			tok.Literal = l.readWhile(isDigit)
		default:
			tok = l.makeToken(tokenIllegal, string(l.ch))
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readRune()
	}
}

// readWhile consumes runes matching pred starting at the current rune and
// leaves the lexer on the first rune that does not match.
func (l *lexer) readWhile(pred func(rune) bool) string {
	start := l.currentOffset()
	for !l.atEnd() && pred(l.ch) {
		l.readRune()
	}
	return l.input[start:l.currentOffset()]
}

func (l *lexer) readComment() string {
	l.readRune()
	literal := l.readWhile(func(r rune) bool { return r != '\n' })
	return trimTrailingSpace(literal)
}

func (l *lexer) readString() (string, string) {
	l.readRune()
	start := l.currentOffset()
	for l.ch != '"' {
		if l.atEnd() || l.ch == '\n' {
			return "", "unterminated string"
		}
		l.readRune()
	}
	literal := l.input[start:l.currentOffset()]
	l.readRune()
	return literal, ""
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == ' ' || s[end-1] == '\t' || s[end-1] == '\r') {
		end--
	}
	return s[:end]
}
