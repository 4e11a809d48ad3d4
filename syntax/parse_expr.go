package syntax

import (
	"github.com/ndrsllwngr/goscript/ast"
	"github.com/ndrsllwngr/goscript/report"
)

// binaryPrecs maps binary operator token kinds to their precedence levels.
// Higher binds tighter.
var binaryPrecs = map[int]int{
	TOK_OR:    1,
	TOK_AND:   2,
	TOK_EQ:    3,
	TOK_NEQ:   3,
	TOK_LT:    3,
	TOK_LTEQ:  3,
	TOK_GT:    3,
	TOK_GTEQ:  3,
	TOK_PLUS:  4,
	TOK_MINUS: 4,
	TOK_STAR:  5,
	TOK_DIV:   5,
	TOK_MOD:   5,
}

// expr := binary_expr ;
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinaryExpr(1)
}

// binary_expr := unary_expr {binary_op unary_expr} ;
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binaryPrecs[p.tok.Kind]
		if !ok || prec < minPrec {
			return lhs, nil
		}

		op := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}

		rhs, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		lhs = &ast.BinaryExpr{
			ExprBase: ast.NewExprBaseOver(lhs.Span(), rhs.Span()),
			Op:       op,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}
}

// unary_expr := ['-' | '+' | '!' | '*'] unary_expr | atom_expr ;
func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	switch p.tok.Kind {
	case TOK_MINUS, TOK_PLUS, TOK_NOT, TOK_STAR:
		opTok := p.tok
		if err := p.next(); err != nil {
			return nil, err
		}

		x, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}

		return &ast.UnaryExpr{
			ExprBase: ast.NewExprBaseOver(opTok.Span, x.Span()),
			Op:       opTok.Value,
			X:        x,
		}, nil
	}

	return p.parseAtomExpr()
}

// atom_expr := atom {trailer} ;
// trailer := '(' [expr_list] ')' | '[' expr ']' | '.' IDENT ;
func (p *Parser) parseAtomExpr() (ast.Expr, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.tok.Kind {
		case TOK_LPAREN:
			if err := p.next(); err != nil {
				return nil, err
			}

			var args []ast.Expr
			if !p.got(TOK_RPAREN) {
				if args, err = p.parseExprList(); err != nil {
					return nil, err
				}
			}

			endTok, err := p.want(TOK_RPAREN)
			if err != nil {
				return nil, err
			}

			atom = &ast.CallExpr{
				ExprBase: ast.NewExprBaseOver(atom.Span(), endTok.Span),
				Fn:       atom,
				Args:     args,
			}
		case TOK_LBRACKET:
			if err := p.next(); err != nil {
				return nil, err
			}

			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			endTok, err := p.want(TOK_RBRACKET)
			if err != nil {
				return nil, err
			}

			atom = &ast.IndexExpr{
				ExprBase: ast.NewExprBaseOver(atom.Span(), endTok.Span),
				X:        atom,
				Index:    index,
			}
		case TOK_DOT:
			if err := p.next(); err != nil {
				return nil, err
			}

			sel, err := p.parseIdent()
			if err != nil {
				return nil, err
			}

			atom = &ast.SelectorExpr{
				ExprBase: ast.NewExprBaseOver(atom.Span(), sel.Span()),
				X:        atom,
				Sel:      sel,
			}
		default:
			return atom, nil
		}
	}
}

// atom := IDENT | literal | '(' expr ')' | func_lit ;
func (p *Parser) parseAtom() (ast.Expr, error) {
	switch p.tok.Kind {
	case TOK_IDENT:
		return p.parseIdent()
	case TOK_INTLIT, TOK_FLOATLIT, TOK_STRINGLIT, TOK_RUNELIT:
		return p.parseLiteral()
	case TOK_LPAREN:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		endTok, err := p.want(TOK_RPAREN)
		if err != nil {
			return nil, err
		}

		return &ast.ParenExpr{
			ExprBase: ast.NewExprBaseOver(start, endTok.Span),
			X:        x,
		}, nil
	case TOK_FUNC:
		return p.parseFuncLit()
	default:
		return nil, p.reject()
	}
}

// literal := INTLIT | FLOATLIT | STRINGLIT | RUNELIT ;
func (p *Parser) parseLiteral() (ast.Expr, error) {
	tok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	var kind int
	switch tok.Kind {
	case TOK_INTLIT:
		kind = ast.IntLit
	case TOK_FLOATLIT:
		kind = ast.FloatLit
	case TOK_STRINGLIT:
		kind = ast.StringLit
	default:
		kind = ast.RuneLit
	}

	return &ast.Literal{
		ExprBase: ast.NewExprBaseOn(tok.Span),
		Kind:     kind,
		Value:    tok.Value,
	}, nil
}

// func_lit := 'func' signature block ;
func (p *Parser) parseFuncLit() (ast.Expr, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	sig, err := p.parseSignature(start)
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncLit{
		ExprBase: ast.NewExprBaseOver(start, body.Span()),
		Type:     sig,
		Body:     body,
	}, nil
}

// -----------------------------------------------------------------------------

// type_expr := IDENT | IDENT '.' IDENT | '*' type_expr | '[' ']' type_expr
//            | 'map' '[' type_expr ']' type_expr | 'func' signature
//            | interface_type | '(' type_expr ')' ;
func (p *Parser) parseTypeExpr() (ast.Expr, error) {
	switch p.tok.Kind {
	case TOK_IDENT:
		id, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		if p.got(TOK_DOT) {
			if err := p.next(); err != nil {
				return nil, err
			}

			sel, err := p.parseIdent()
			if err != nil {
				return nil, err
			}

			return &ast.SelectorExpr{
				ExprBase: ast.NewExprBaseOver(id.Span(), sel.Span()),
				X:        id,
				Sel:      sel,
			}, nil
		}

		return id, nil
	case TOK_STAR:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		return &ast.StarExpr{
			ExprBase: ast.NewExprBaseOver(start, elem.Span()),
			Elem:     elem,
		}, nil
	case TOK_LBRACKET:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		if _, err := p.want(TOK_RBRACKET); err != nil {
			return nil, err
		}

		elem, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		return &ast.SliceTypeExpr{
			ExprBase: ast.NewExprBaseOver(start, elem.Span()),
			Elem:     elem,
		}, nil
	case TOK_MAP:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		if _, err := p.want(TOK_LBRACKET); err != nil {
			return nil, err
		}

		key, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		if _, err := p.want(TOK_RBRACKET); err != nil {
			return nil, err
		}

		value, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		return &ast.MapTypeExpr{
			ExprBase: ast.NewExprBaseOver(start, value.Span()),
			Key:      key,
			Value:    value,
		}, nil
	case TOK_FUNC:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		return p.parseSignature(start)
	case TOK_INTERFACE:
		return p.parseInterfaceType()
	case TOK_LPAREN:
		start := p.tok.Span
		if err := p.next(); err != nil {
			return nil, err
		}

		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		endTok, err := p.want(TOK_RPAREN)
		if err != nil {
			return nil, err
		}

		return &ast.ParenExpr{
			ExprBase: ast.NewExprBaseOver(start, endTok.Span),
			X:        inner,
		}, nil
	default:
		return nil, p.reject()
	}
}

// signature := '(' [param {',' param}] ')' [type_expr | '(' param {',' param} ')'] ;
func (p *Parser) parseSignature(start *report.TextSpan) (*ast.FuncTypeExpr, error) {
	if _, err := p.want(TOK_LPAREN); err != nil {
		return nil, err
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	endTok, err := p.want(TOK_RPAREN)
	if err != nil {
		return nil, err
	}

	sig := &ast.FuncTypeExpr{Params: params}
	end := endTok.Span

	switch p.tok.Kind {
	case TOK_LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}

		if sig.Results, err = p.parseParamList(); err != nil {
			return nil, err
		}

		if endTok, err = p.want(TOK_RPAREN); err != nil {
			return nil, err
		}

		end = endTok.Span
	case TOK_IDENT, TOK_STAR, TOK_LBRACKET, TOK_MAP, TOK_FUNC, TOK_INTERFACE:
		result, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}

		sig.Results = []*ast.Param{{
			NodeBase: ast.NewNodeBaseOn(result.Span()),
			Type:     result,
		}}
		end = result.Span()
	}

	sig.ExprBase = ast.NewExprBaseOver(start, end)
	return sig, nil
}

// parseParamList parses a possibly empty comma separated parameter list.  It
// stops at the closing parenthesis without consuming it.
func (p *Parser) parseParamList() ([]*ast.Param, error) {
	var params []*ast.Param
	for !p.got(TOK_RPAREN) {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}

		params = append(params, param)

		if !p.got(TOK_COMMA) {
			break
		}

		if err := p.next(); err != nil {
			return nil, err
		}
	}

	return params, nil
}

// param := IDENT type_expr | type_expr ;
//
// Every named parameter carries its own type.  An identifier followed by
// another type token is a name; an identifier followed by a comma, closing
// parenthesis, or dot is itself a type and the parameter is anonymous.
func (p *Parser) parseParam() (*ast.Param, error) {
	if p.got(TOK_IDENT) {
		ahead, err := p.peek()
		if err != nil {
			return nil, err
		}

		switch ahead.Kind {
		case TOK_IDENT, TOK_STAR, TOK_LBRACKET, TOK_MAP, TOK_FUNC, TOK_INTERFACE, TOK_LPAREN:
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}

			typ, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}

			return &ast.Param{
				NodeBase: ast.NewNodeBaseOver(name.Span(), typ.Span()),
				Name:     name,
				Type:     typ,
			}, nil
		}
	}

	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Param{
		NodeBase: ast.NewNodeBaseOn(typ.Span()),
		Type:     typ,
	}, nil
}

// interface_type := 'interface' '{' {IDENT signature ';'} '}' ;
func (p *Parser) parseInterfaceType() (ast.Expr, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	if _, err := p.want(TOK_LBRACE); err != nil {
		return nil, err
	}

	it := &ast.InterfaceTypeExpr{}
	for p.got(TOK_SEMICOLON) {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	for !p.got(TOK_RBRACE) {
		name, err := p.parseIdent()
		if err != nil {
			return nil, err
		}

		sig, err := p.parseSignature(name.Span())
		if err != nil {
			return nil, err
		}

		it.Methods = append(it.Methods, &ast.MethodSig{
			NodeBase: ast.NewNodeBaseOver(name.Span(), sig.Span()),
			Name:     name,
			Type:     sig,
		})

		if !p.got(TOK_RBRACE) {
			if _, err := p.want(TOK_SEMICOLON); err != nil {
				return nil, err
			}
		}
	}

	endTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	it.ExprBase = ast.NewExprBaseOver(start, endTok.Span)
	return it, nil
}
