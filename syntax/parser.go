package syntax

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
)

// Parser is the parser for a single source file.  It is a recursive descent
// parser: all parsing functions assume they begin positioned on the first
// token of their production and consume every token of it, leaving the parser
// on the token that follows.  The first syntax error aborts the parse.
type Parser struct {
	lexer    *Lexer
	reprPath string

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookahead is the buffered next token, or nil if none is buffered.
	lookahead *Token
}

// ParseFile parses one source file into an AST file.  On a syntax error, the
// returned error is a *report.Diagnostic positioned at the offending token.
func ParseFile(absPath, reprPath string, r io.Reader) (*ast.File, error) {
	p := &Parser{
		lexer:    NewLexer(reprPath, bufio.NewReader(r)),
		reprPath: reprPath,
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	file, err := p.parseFile()
	if err != nil {
		return nil, err
	}

	file.AbsPath = absPath
	file.ReprPath = reprPath
	return file, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() error {
	if p.lookahead != nil {
		p.tok = p.lookahead
		p.lookahead = nil
		return nil
	}

	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

// peek returns the token after the current one without consuming it.
func (p *Parser) peek() (*Token, error) {
	if p.lookahead == nil {
		tok, err := p.lexer.NextToken()
		if err != nil {
			return nil, err
		}

		p.lookahead = tok
	}

	return p.lookahead, nil
}

// got returns true if the parser is on a token of the given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind and moves it
// forward, returning the matched token.
func (p *Parser) want(kind int) (*Token, error) {
	if !p.got(kind) {
		return nil, p.reject()
	}

	tok := p.tok
	return tok, p.next()
}

// wantTerminator asserts that the current token ends a statement or
// declaration.  A closing brace terminates without being consumed.
func (p *Parser) wantTerminator() error {
	switch p.tok.Kind {
	case TOK_SEMICOLON:
		return p.next()
	case TOK_RBRACE, TOK_EOF:
		return nil
	default:
		return p.reject()
	}
}

// reject produces an unexpected token error on the current token.
func (p *Parser) reject() error {
	var msg string
	if p.tok.Kind == TOK_EOF {
		msg = "unexpected end of file"
	} else {
		msg = fmt.Sprintf("unexpected token: `%s`", p.tok.Value)
	}

	return p.errorOn(p.tok, msg)
}

// errorOn produces a syntax error on the given token.
func (p *Parser) errorOn(tok *Token, msg string, args ...interface{}) error {
	return &report.Diagnostic{
		ReprPath: p.reprPath,
		Span:     tok.Span,
		Message:  fmt.Sprintf(msg, args...),
	}
}

// -----------------------------------------------------------------------------

// file := package_clause {import_decl} {top_decl} ;
func (p *Parser) parseFile() (*ast.File, error) {
	start := p.tok.Span

	if _, err := p.want(TOK_PACKAGE); err != nil {
		return nil, err
	}

	pkgName, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if err := p.wantTerminator(); err != nil {
		return nil, err
	}

	file := &ast.File{
		NodeBase: ast.NewNodeBaseOn(start),
		PkgName:  pkgName,
	}

	for p.got(TOK_IMPORT) {
		imports, err := p.parseImportDecl()
		if err != nil {
			return nil, err
		}

		file.Imports = append(file.Imports, imports...)
	}

	for !p.got(TOK_EOF) {
		decl, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}

		file.Decls = append(file.Decls, decl)

		if err := p.wantTerminator(); err != nil {
			return nil, err
		}
	}

	return file, nil
}

// import_decl := 'import' (import_spec | '(' {import_spec ';'} ')') ;
func (p *Parser) parseImportDecl() ([]*ast.ImportDecl, error) {
	if err := p.next(); err != nil {
		return nil, err
	}

	var imports []*ast.ImportDecl
	if p.got(TOK_LPAREN) {
		if err := p.next(); err != nil {
			return nil, err
		}

		for p.got(TOK_SEMICOLON) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		for !p.got(TOK_RPAREN) {
			imp, err := p.parseImportSpec()
			if err != nil {
				return nil, err
			}

			imports = append(imports, imp)

			if !p.got(TOK_RPAREN) {
				if _, err := p.want(TOK_SEMICOLON); err != nil {
					return nil, err
				}
			}
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	} else {
		imp, err := p.parseImportSpec()
		if err != nil {
			return nil, err
		}

		imports = append(imports, imp)
	}

	return imports, p.wantTerminator()
}

// import_spec := ['.' | IDENT] STRINGLIT ;
func (p *Parser) parseImportSpec() (*ast.ImportDecl, error) {
	start := p.tok.Span

	var alias *ast.Ident
	switch p.tok.Kind {
	case TOK_DOT:
		alias = &ast.Ident{ExprBase: ast.NewExprBaseOn(p.tok.Span), Name: "."}
		if err := p.next(); err != nil {
			return nil, err
		}
	case TOK_IDENT:
		var err error
		if alias, err = p.parseIdent(); err != nil {
			return nil, err
		}
	}

	pathTok, err := p.want(TOK_STRINGLIT)
	if err != nil {
		return nil, err
	}

	return &ast.ImportDecl{
		NodeBase: ast.NewNodeBaseOver(start, pathTok.Span),
		Alias:    alias,
		Path:     pathTok.Value,
		PathSpan: pathTok.Span,
	}, nil
}

// -----------------------------------------------------------------------------

// top_decl := const_decl | var_decl | type_decl | func_decl ;
func (p *Parser) parseTopDecl() (ast.Decl, error) {
	switch p.tok.Kind {
	case TOK_CONST, TOK_VAR:
		return p.parseValueDecl()
	case TOK_TYPE:
		return p.parseTypeDecl()
	case TOK_FUNC:
		return p.parseFuncDecl()
	default:
		return nil, p.reject()
	}
}

// value_decl := ('const' | 'var') (value_spec | '(' {value_spec ';'} ')') ;
func (p *Parser) parseValueDecl() (ast.Decl, error) {
	start := p.tok.Span
	isConst := p.got(TOK_CONST)

	if err := p.next(); err != nil {
		return nil, err
	}

	var specs []*ast.ValueSpec
	end := start
	if p.got(TOK_LPAREN) {
		if err := p.next(); err != nil {
			return nil, err
		}

		for p.got(TOK_SEMICOLON) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}

		for !p.got(TOK_RPAREN) {
			spec, err := p.parseValueSpec(isConst)
			if err != nil {
				return nil, err
			}

			specs = append(specs, spec)

			if !p.got(TOK_RPAREN) {
				if _, err := p.want(TOK_SEMICOLON); err != nil {
					return nil, err
				}
			}
		}

		end = p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}
	} else {
		spec, err := p.parseValueSpec(isConst)
		if err != nil {
			return nil, err
		}

		specs = append(specs, spec)
		end = spec.Span()
	}

	if isConst {
		return &ast.ConstDecl{
			DeclBase: ast.DeclBase{NodeBase: ast.NewNodeBaseOver(start, end)},
			Specs:    specs,
		}, nil
	}

	return &ast.VarDecl{
		DeclBase: ast.DeclBase{NodeBase: ast.NewNodeBaseOver(start, end)},
		Specs:    specs,
	}, nil
}

// value_spec := ident_list [type_expr] ['=' expr_list] ;
//
// A constant spec with neither type nor values inherits both from the previous
// spec of its declaration; that inheritance happens during checking, not here.
func (p *Parser) parseValueSpec(isConst bool) (*ast.ValueSpec, error) {
	names, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}

	spec := &ast.ValueSpec{Names: names}
	end := names[len(names)-1].Span()

	if !p.got(TOK_ASSIGN) && !p.got(TOK_SEMICOLON) && !p.got(TOK_RPAREN) && !p.got(TOK_RBRACE) && !p.got(TOK_EOF) {
		if spec.Type, err = p.parseTypeExpr(); err != nil {
			return nil, err
		}

		end = spec.Type.Span()
	}

	if p.got(TOK_ASSIGN) {
		if err := p.next(); err != nil {
			return nil, err
		}

		if spec.Values, err = p.parseExprList(); err != nil {
			return nil, err
		}

		end = spec.Values[len(spec.Values)-1].Span()
	} else if !isConst && spec.Type == nil {
		return nil, p.errorOn(p.tok, "variable declaration requires a type or an initializer")
	}

	spec.NodeBase = ast.NewNodeBaseOver(names[0].Span(), end)
	return spec, nil
}

// type_decl := 'type' IDENT type_expr ;
func (p *Parser) parseTypeDecl() (ast.Decl, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	target, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	return &ast.TypeDecl{
		DeclBase: ast.DeclBase{NodeBase: ast.NewNodeBaseOver(start, target.Span())},
		Name:     name,
		Target:   target,
	}, nil
}

// func_decl := 'func' ['(' param ')'] IDENT signature [block] ;
func (p *Parser) parseFuncDecl() (ast.Decl, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	var recv *ast.Param
	if p.got(TOK_LPAREN) {
		if err := p.next(); err != nil {
			return nil, err
		}

		var err error
		if recv, err = p.parseParam(); err != nil {
			return nil, err
		}

		if _, err := p.want(TOK_RPAREN); err != nil {
			return nil, err
		}
	}

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	sig, err := p.parseSignature(name.Span())
	if err != nil {
		return nil, err
	}

	decl := &ast.FuncDecl{
		Recv:      recv,
		Name:      name,
		Signature: sig,
	}

	end := sig.Span()
	if p.got(TOK_LBRACE) {
		if decl.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}

		end = decl.Body.Span()
	}

	decl.DeclBase = ast.DeclBase{NodeBase: ast.NewNodeBaseOver(start, end)}
	return decl, nil
}

// -----------------------------------------------------------------------------

// parseIdent parses a single identifier.
func (p *Parser) parseIdent() (*ast.Ident, error) {
	tok, err := p.want(TOK_IDENT)
	if err != nil {
		return nil, err
	}

	return &ast.Ident{ExprBase: ast.NewExprBaseOn(tok.Span), Name: tok.Value}, nil
}

// ident_list := IDENT {',' IDENT} ;
func (p *Parser) parseIdentList() ([]*ast.Ident, error) {
	var idents []*ast.Ident
	for {
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		idents = append(idents, id)

		if !p.got(TOK_COMMA) {
			return idents, nil
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}
}

// expr_list := expr {',' expr} ;
func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, expr)

		if !p.got(TOK_COMMA) {
			return exprs, nil
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}
}
