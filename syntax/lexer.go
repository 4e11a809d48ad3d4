package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ndrsllwngr/goscript/report"
)

// Lexer is responsible for tokenizing a source file.  Line breaks terminate
// statements: the lexer inserts a semicolon token at the end of any line whose
// final token could end a statement.
type Lexer struct {
	file     *bufio.Reader
	reprPath string
	tokBuff  *strings.Builder

	line, col           int
	startLine, startCol int

	// prevKind is the kind of the most recently produced token; it decides
	// semicolon insertion.  It is -1 at the start of input.
	prevKind int

	eofSemi bool
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(reprPath string, file *bufio.Reader) *Lexer {
	return &Lexer{
		file:     file,
		reprPath: reprPath,
		tokBuff:  &strings.Builder{},
		prevKind: -1,
	}
}

// NextToken retrieves the next token from the input file.  If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	tok, err := l.nextToken()
	if err != nil {
		return nil, err
	}

	l.prevKind = tok.Kind
	return tok, nil
}

func (l *Lexer) nextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n':
			if insertSemiAfter(l.prevKind) {
				l.mark()
				l.skip()
				return l.makeToken(TOK_SEMICOLON, ";"), nil
			}

			l.skip()
		case '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if tok, err := l.lexCommentOrDiv(); tok != nil || err != nil {
				return tok, err
			}
		case '\'':
			return l.lexRuneLit()
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	if insertSemiAfter(l.prevKind) && !l.eofSemi {
		l.eofSemi = true
		l.mark()
		return l.makeToken(TOK_SEMICOLON, ";"), nil
	}

	l.mark()
	return l.makeToken(TOK_EOF, ""), nil
}

// insertSemiAfter returns whether a line break following a token of the given
// kind terminates a statement.
func insertSemiAfter(kind int) bool {
	switch kind {
	case TOK_IDENT, TOK_INTLIT, TOK_FLOATLIT, TOK_STRINGLIT, TOK_RUNELIT,
		TOK_RETURN, TOK_BREAK, TOK_CONTINUE,
		TOK_RPAREN, TOK_RBRACKET, TOK_RBRACE:
		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// lexCommentOrDiv handles an input sequence beginning with `/`: a line
// comment, a block comment, or a division operator.  It returns a nil token
// if the sequence was a comment.
func (l *Lexer) lexCommentOrDiv() (*Token, error) {
	l.mark()
	l.read()

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch c {
	case '/':
		for c != '\n' && c != -1 {
			l.skip()

			c, err = l.peek()
			if err != nil {
				return nil, err
			}
		}

		l.tokBuff.Reset()
		return nil, nil
	case '*':
		l.skip()

		for {
			c, err = l.peek()
			if err != nil {
				return nil, err
			} else if c == -1 {
				return nil, l.failf("unterminated block comment")
			}

			l.skip()

			if c == '*' {
				if c, err = l.peek(); err != nil {
					return nil, err
				} else if c == '/' {
					l.skip()
					break
				}
			}
		}

		l.tokBuff.Reset()
		return nil, nil
	default:
		return l.makeToken(TOK_DIV, l.drain()), nil
	}
}

// lexRuneLit lexes a single-quoted rune literal.
func (l *Lexer) lexRuneLit() (*Token, error) {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return nil, err
	} else if c == -1 || c == '\n' {
		return nil, l.failf("unterminated rune literal")
	}

	if c == '\\' {
		l.skip()
		if err := l.readEscape(); err != nil {
			return nil, err
		}
	} else {
		l.read()
	}

	c, err = l.peek()
	if err != nil {
		return nil, err
	} else if c != '\'' {
		return nil, l.failf("unterminated rune literal")
	}

	l.skip()
	return l.makeToken(TOK_RUNELIT, l.drain()), nil
}

// lexStringLit lexes a double-quoted string literal.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1, '\n':
			return nil, l.failf("unterminated string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT, l.drain()), nil
		case '\\':
			l.skip()
			if err := l.readEscape(); err != nil {
				return nil, err
			}
		default:
			l.read()
		}
	}
}

// readEscape resolves a backslash escape sequence into the token buffer.
func (l *Lexer) readEscape() error {
	c, err := l.peek()
	if err != nil {
		return err
	}

	switch c {
	case 'n':
		l.tokBuff.WriteRune('\n')
	case 't':
		l.tokBuff.WriteRune('\t')
	case 'r':
		l.tokBuff.WriteRune('\r')
	case '\\', '\'', '"':
		l.tokBuff.WriteRune(c)
	case '0':
		l.tokBuff.WriteRune(0)
	default:
		return l.failf("unknown escape sequence: `\\%c`", c)
	}

	l.skip()
	return nil
}

// lexNumericLit lexes an integer or floating point literal.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	l.read()

	isFloat := false
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isDecimalDigit(c) || c == '_' {
			l.read()
		} else if c == '.' && !isFloat {
			isFloat = true
			l.read()
		} else {
			break
		}
	}

	if isFloat {
		return l.makeToken(TOK_FLOATLIT, l.drain()), nil
	}

	return l.makeToken(TOK_INTLIT, l.drain()), nil
}

// lexIdentOrKeyword lexes an identifier or keyword.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.read()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if isIdentChar(c) {
			l.read()
		} else {
			break
		}
	}

	value := l.drain()
	if kind, ok := keywordPatterns[value]; ok {
		return l.makeToken(kind, value), nil
	}

	return l.makeToken(TOK_IDENT, value), nil
}

// lexPunctOrOper lexes a punctuation or operator token, preferring the
// longest match.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.read()

	value := l.tokBuff.String()
	kind, ok := symbolPatterns[value]

	c, err := l.peek()
	if err != nil {
		return nil, err
	}

	if c != -1 {
		if twoKind, twoOk := symbolPatterns[value+string(c)]; twoOk {
			l.read()
			return l.makeToken(twoKind, l.drain()), nil
		}
	}

	if !ok {
		return nil, l.failf("unknown character: `%s`", value)
	}

	return l.makeToken(kind, l.drain()), nil
}

// -----------------------------------------------------------------------------

// mark records the current position as the start of the next token.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// peek returns the next rune of input without consuming it, or -1 at the end
// of input.
func (l *Lexer) peek() (rune, error) {
	r, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err := l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return r, nil
}

// skip consumes the next rune of input without adding it to the token buffer.
func (l *Lexer) skip() {
	r, _, err := l.file.ReadRune()
	if err != nil {
		return
	}

	l.advance(r)
}

// read consumes the next rune of input and adds it to the token buffer.
func (l *Lexer) read() {
	r, _, err := l.file.ReadRune()
	if err != nil {
		return
	}

	l.tokBuff.WriteRune(r)
	l.advance(r)
}

func (l *Lexer) advance(r rune) {
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// drain empties the token buffer and returns its contents.
func (l *Lexer) drain() string {
	value := l.tokBuff.String()
	l.tokBuff.Reset()
	return value
}

// makeToken produces a token of the given kind spanning from the marked start
// position to the current position.
func (l *Lexer) makeToken(kind int, value string) *Token {
	return &Token{
		Kind:  kind,
		Value: value,
		Span: &report.TextSpan{
			StartLine: l.startLine,
			StartCol:  l.startCol,
			EndLine:   l.line,
			EndCol:    l.col,
		},
	}
}

func (l *Lexer) failf(msg string, args ...interface{}) error {
	return &report.Diagnostic{
		ReprPath: l.reprPath,
		Span:     &report.TextSpan{StartLine: l.line, StartCol: l.col, EndLine: l.line, EndCol: l.col + 1},
		Message:  fmt.Sprintf(msg, args...),
	}
}

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return isFirstIdentChar(c) || isDecimalDigit(c)
}
