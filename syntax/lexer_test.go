package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

// lexAll collects the kinds of every token in the source, up to and including
// the end-of-file token.
func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	l := NewLexer("test.gs", bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		be.Err(t, err, nil)
		toks = append(toks, tok)

		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func kindsOf(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexTokens(t *testing.T) {
	toks := lexAll(t, "x := y + 42")
	be.Equal(t, kindsOf(toks), []int{TOK_IDENT, TOK_DEFINE, TOK_IDENT, TOK_PLUS, TOK_INTLIT, TOK_SEMICOLON, TOK_EOF})
	be.Equal(t, toks[0].Value, "x")
	be.Equal(t, toks[4].Value, "42")
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks := lexAll(t, "package forty fortytwo for")
	be.Equal(t, kindsOf(toks)[:4], []int{TOK_PACKAGE, TOK_IDENT, TOK_IDENT, TOK_FOR})
}

func TestLexSemicolonInsertion(t *testing.T) {
	// A newline terminates a statement only after certain token kinds.
	toks := lexAll(t, "x = a +\nb\n")
	be.Equal(t, kindsOf(toks), []int{TOK_IDENT, TOK_ASSIGN, TOK_IDENT, TOK_PLUS, TOK_IDENT, TOK_SEMICOLON, TOK_EOF})

	toks = lexAll(t, "return\n}")
	be.Equal(t, kindsOf(toks), []int{TOK_RETURN, TOK_SEMICOLON, TOK_RBRACE, TOK_SEMICOLON, TOK_EOF})
}

func TestLexComments(t *testing.T) {
	toks := lexAll(t, "a // trailing comment\nb /* inline */ c")
	be.Equal(t, kindsOf(toks), []int{TOK_IDENT, TOK_SEMICOLON, TOK_IDENT, TOK_IDENT, TOK_SEMICOLON, TOK_EOF})
}

func TestLexNumericLiterals(t *testing.T) {
	toks := lexAll(t, "1_000 3.14")
	be.Equal(t, toks[0].Kind, TOK_INTLIT)
	be.Equal(t, toks[0].Value, "1_000")
	be.Equal(t, toks[1].Kind, TOK_FLOATLIT)
	be.Equal(t, toks[1].Value, "3.14")
}

func TestLexStringAndRuneLiterals(t *testing.T) {
	toks := lexAll(t, `"hi\n" 'x'`)
	be.Equal(t, toks[0].Kind, TOK_STRINGLIT)
	be.Equal(t, toks[0].Value, "hi\n")
	be.Equal(t, toks[1].Kind, TOK_RUNELIT)
	be.Equal(t, toks[1].Value, "x")
}

func TestLexTwoCharOperators(t *testing.T) {
	toks := lexAll(t, "a <= b != c && d")
	be.Equal(t, kindsOf(toks), []int{TOK_IDENT, TOK_LTEQ, TOK_IDENT, TOK_NEQ, TOK_IDENT, TOK_AND, TOK_IDENT, TOK_SEMICOLON, TOK_EOF})
}

func TestLexSpans(t *testing.T) {
	toks := lexAll(t, "ab\n cd")

	// Spans are zero-indexed.
	be.Equal(t, toks[0].Span.StartLine, 0)
	be.Equal(t, toks[0].Span.StartCol, 0)
	be.Equal(t, toks[0].Span.EndCol, 2)

	cd := toks[2]
	be.Equal(t, cd.Value, "cd")
	be.Equal(t, cd.Span.StartLine, 1)
	be.Equal(t, cd.Span.StartCol, 1)
}

func TestLexErrors(t *testing.T) {
	l := NewLexer("test.gs", bufio.NewReader(strings.NewReader("\"unterminated")))
	_, err := l.NextToken()
	be.True(t, err != nil)

	l = NewLexer("test.gs", bufio.NewReader(strings.NewReader("/* no end")))
	_, err = l.NextToken()
	be.True(t, err != nil)
}
