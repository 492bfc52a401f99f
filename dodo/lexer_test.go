package dodo

import "testing"

func assertTokens(t *testing.T, input string, expected []Token) {
	t.Helper()
	l := newLexer(input)
	for i, want := range expected {
		got := l.NextToken()
		if !got.Same(want) {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, want.Type, want.Literal, got.Type, got.Literal)
		}
	}
}

func TestLexerDelimiters(t *testing.T) {
	assertTokens(t, "=+(){}[],:\n", []Token{
		{Type: tokenAssign, Literal: "="},
		{Type: tokenPlus, Literal: "+"},
		{Type: tokenLParen, Literal: "("},
		{Type: tokenRParen, Literal: ")"},
		{Type: tokenLBrace, Literal: "{"},
		{Type: tokenRBrace, Literal: "}"},
		{Type: tokenLBracket, Literal: "["},
		{Type: tokenRBracket, Literal: "]"},
		{Type: tokenComma, Literal: ","},
		{Type: tokenColon, Literal: ":"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenEOF},
	})
}

func TestLexerDeclarations(t *testing.T) {
	input := "scalar x\n" +
		"vector y[2]\n" +
		" matrix z[2,2]\n" +
		" z = { 1 1 0 0 }\n" +
		" print x"

	assertTokens(t, input, []Token{
		{Type: tokenScalar, Literal: "scalar"},
		{Type: tokenIdent, Literal: "x"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenVector, Literal: "vector"},
		{Type: tokenIdent, Literal: "y"},
		{Type: tokenLBracket, Literal: "["},
		{Type: tokenInt, Literal: "2"},
		{Type: tokenRBracket, Literal: "]"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenMatrix, Literal: "matrix"},
		{Type: tokenIdent, Literal: "z"},
		{Type: tokenLBracket, Literal: "["},
		{Type: tokenInt, Literal: "2"},
		{Type: tokenComma, Literal: ","},
		{Type: tokenInt, Literal: "2"},
		{Type: tokenRBracket, Literal: "]"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenIdent, Literal: "z"},
		{Type: tokenAssign, Literal: "="},
		{Type: tokenLBrace, Literal: "{"},
		{Type: tokenInt, Literal: "1"},
		{Type: tokenInt, Literal: "1"},
		{Type: tokenInt, Literal: "0"},
		{Type: tokenInt, Literal: "0"},
		{Type: tokenRBrace, Literal: "}"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenPrint, Literal: "print"},
		{Type: tokenIdent, Literal: "x"},
		{Type: tokenEOF},
	})
}

func TestLexerOperators(t *testing.T) {
	assertTokens(t, "a == b != c > d < e ! -f / g * h", []Token{
		{Type: tokenIdent, Literal: "a"},
		{Type: tokenEQ, Literal: "=="},
		{Type: tokenIdent, Literal: "b"},
		{Type: tokenNotEQ, Literal: "!="},
		{Type: tokenIdent, Literal: "c"},
		{Type: tokenGT, Literal: ">"},
		{Type: tokenIdent, Literal: "d"},
		{Type: tokenLT, Literal: "<"},
		{Type: tokenIdent, Literal: "e"},
		{Type: tokenBang, Literal: "!"},
		{Type: tokenMinus, Literal: "-"},
		{Type: tokenIdent, Literal: "f"},
		{Type: tokenSlash, Literal: "/"},
		{Type: tokenIdent, Literal: "g"},
		{Type: tokenAsterisk, Literal: "*"},
		{Type: tokenIdent, Literal: "h"},
		{Type: tokenEOF},
	})
}

func TestLexerCommentsStringsAndIllegal(t *testing.T) {
	assertTokens(t, "x # running total  \n\"label\" @ \"open", []Token{
		{Type: tokenIdent, Literal: "x"},
		{Type: tokenComment, Literal: " running total"},
		{Type: tokenNewLine, Literal: "\n"},
		{Type: tokenString, Literal: "label"},
		{Type: tokenIllegal, Literal: "@"},
		{Type: tokenIllegal, Literal: "unterminated string"},
		{Type: tokenEOF},
	})
}

func TestLexerIdentifiersStopAtDigits(t *testing.T) {
	assertTokens(t, "abc123", []Token{
		{Type: tokenIdent, Literal: "abc"},
		{Type: tokenInt, Literal: "123"},
		{Type: tokenEOF},
	})
}

func TestLexerKeepsReturningEOF(t *testing.T) {
	l := newLexer("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != tokenEOF {
			t.Fatalf("call %d: expected EOF, got %s", i, tok.Type)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := Tokenize("scalar x\n  y = 1")
	cases := []struct {
		index  int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 8},
		{2, 1, 9},
		{3, 2, 3},
		{4, 2, 5},
		{5, 2, 7},
	}
	for _, tc := range cases {
		pos := tokens[tc.index].Pos
		if pos.Line != tc.line || pos.Column != tc.column {
			t.Fatalf("token %d (%q): expected %d:%d, got %d:%d", tc.index, tokens[tc.index].Literal, tc.line, tc.column, pos.Line, pos.Column)
		}
	}
	if last := tokens[len(tokens)-1]; last.Type != tokenEOF {
		t.Fatalf("expected trailing EOF, got %s", last.Type)
	}
}
