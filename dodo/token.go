package dodo

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"
	tokenNewLine TokenType = "NEWLINE"
	tokenComment TokenType = "COMMENT"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenString TokenType = "STRING"

	tokenGT    TokenType = ">"
	tokenLT    TokenType = "<"
	tokenNotEQ TokenType = "!="
	tokenEQ    TokenType = "=="

	tokenAssign   TokenType = "="
	tokenSlash    TokenType = "/"
	tokenAsterisk TokenType = "*"
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenBang     TokenType = "!"

	tokenLBrace   TokenType = "{"
	tokenRBrace   TokenType = "}"
	tokenLBracket TokenType = "["
	tokenRBracket TokenType = "]"
	tokenLParen   TokenType = "("
	tokenRParen   TokenType = ")"
	tokenColon    TokenType = ":"
	tokenComma    TokenType = ","

	tokenScalar TokenType = "SCALAR"
	tokenVector TokenType = "VECTOR"
	tokenMatrix TokenType = "MATRIX"
	tokenFor    TokenType = "FOR"
	tokenPrint  TokenType = "PRINT"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source text. It is only used
// for diagnostics.
type Position struct {
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"scalar": tokenScalar,
	"vector": tokenVector,
	"matrix": tokenMatrix,
	"for":    tokenFor,
	"print":  tokenPrint,
}

// Keywords returns the reserved words of the language in declaration order.
func Keywords() []string {
	return []string{"scalar", "vector", "matrix", "for", "print"}
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}

func isDeclarationKeyword(tt TokenType) bool {
	return tt == tokenScalar || tt == tokenVector || tt == tokenMatrix
}

// Same reports whether two tokens have the same type and literal, ignoring
// their positions.
func (t Token) Same(other Token) bool {
	return t.Type == other.Type && t.Literal == other.Literal
}
