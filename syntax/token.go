package syntax

import "github.com/ndrsllwngr/goscript/report"

// Token represents a single lexical token.
type Token struct {
	Kind  int
	Value string
	Span  *report.TextSpan
}

// Enumeration of token kinds.
const (
	TOK_IDENT = iota

	TOK_INTLIT
	TOK_FLOATLIT
	TOK_STRINGLIT
	TOK_RUNELIT

	TOK_PACKAGE
	TOK_IMPORT
	TOK_CONST
	TOK_VAR
	TOK_TYPE
	TOK_FUNC
	TOK_RETURN
	TOK_IF
	TOK_ELSE
	TOK_FOR
	TOK_BREAK
	TOK_CONTINUE
	TOK_GOTO
	TOK_MAP
	TOK_INTERFACE

	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_DIV
	TOK_MOD

	TOK_EQ
	TOK_NEQ
	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ

	TOK_AND
	TOK_OR
	TOK_NOT

	TOK_ASSIGN
	TOK_DEFINE

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE

	TOK_COMMA
	TOK_DOT
	TOK_COLON
	TOK_SEMICOLON

	TOK_EOF
)

// keywordPatterns maps keyword strings to their token kinds.
var keywordPatterns = map[string]int{
	"package":   TOK_PACKAGE,
	"import":    TOK_IMPORT,
	"const":     TOK_CONST,
	"var":       TOK_VAR,
	"type":      TOK_TYPE,
	"func":      TOK_FUNC,
	"return":    TOK_RETURN,
	"if":        TOK_IF,
	"else":      TOK_ELSE,
	"for":       TOK_FOR,
	"break":     TOK_BREAK,
	"continue":  TOK_CONTINUE,
	"goto":      TOK_GOTO,
	"map":       TOK_MAP,
	"interface": TOK_INTERFACE,
}

// symbolPatterns maps punctuation and operator strings to their token kinds.
var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"*":  TOK_STAR,
	"/":  TOK_DIV,
	"%":  TOK_MOD,
	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,
	"&&": TOK_AND,
	"||": TOK_OR,
	"!":  TOK_NOT,
	"=":  TOK_ASSIGN,
	":=": TOK_DEFINE,
	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	"{":  TOK_LBRACE,
	"}":  TOK_RBRACE,
	",":  TOK_COMMA,
	".":  TOK_DOT,
	":":  TOK_COLON,
	";":  TOK_SEMICOLON,
}
