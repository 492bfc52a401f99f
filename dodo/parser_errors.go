package dodo

import (
	"fmt"
	"strings"
)

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addParseError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

func (p *parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Msg: msg, source: p.source})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		return fmt.Sprintf("invalid token %q", tok.Literal)
	case tokenEOF:
		return "end of input"
	case tokenNewLine:
		return "end of line"
	case tokenComment:
		return "comment"
	case tokenIdent:
		return "identifier"
	case tokenInt:
		return "integer"
	case tokenString:
		return "string"
	case tokenScalar, tokenVector, tokenMatrix, tokenFor, tokenPrint:
		return fmt.Sprintf("'%s'", strings.ToLower(string(tok.Type)))
	default:
		return fmt.Sprintf("%q", string(tok.Type))
	}
}
