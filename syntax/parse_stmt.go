package syntax

import (
	"github.com/ndrsllwngr/goscript/ast"
)

// block := '{' {stmt ';'} '}' ;
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	startTok, err := p.want(TOK_LBRACE)
	if err != nil {
		return nil, err
	}

	block := &ast.BlockStmt{}
	for p.got(TOK_SEMICOLON) {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	for !p.got(TOK_RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}

		block.Stmts = append(block.Stmts, stmt)

		if err := p.wantTerminator(); err != nil {
			return nil, err
		}

		for p.got(TOK_SEMICOLON) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}

	endTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	block.StmtBase = ast.StmtBase{NodeBase: ast.NewNodeBaseOver(startTok.Span, endTok.Span)}
	return block, nil
}

// stmt := decl_stmt | if_stmt | for_stmt | return_stmt | branch_stmt
//       | labeled_stmt | block | simple_stmt ;
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.tok.Kind {
	case TOK_CONST, TOK_VAR, TOK_TYPE:
		return p.parseDeclStmt()
	case TOK_IF:
		return p.parseIfStmt()
	case TOK_FOR:
		return p.parseForStmt()
	case TOK_RETURN:
		return p.parseReturnStmt()
	case TOK_BREAK, TOK_CONTINUE, TOK_GOTO:
		return p.parseBranchStmt()
	case TOK_LBRACE:
		return p.parseBlock()
	case TOK_IDENT:
		ahead, err := p.peek()
		if err != nil {
			return nil, err
		}

		if ahead.Kind == TOK_COLON {
			return p.parseLabeledStmt()
		}

		return p.parseSimpleStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// decl_stmt := value_decl | type_decl ;
func (p *Parser) parseDeclStmt() (ast.Stmt, error) {
	var decl ast.Decl
	var err error
	if p.got(TOK_TYPE) {
		decl, err = p.parseTypeDecl()
	} else {
		decl, err = p.parseValueDecl()
	}

	if err != nil {
		return nil, err
	}

	return &ast.DeclStmt{
		StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBaseOn(decl.Span())},
		Decl:     decl,
	}, nil
}

// simple_stmt := expr_list (':=' | '=') expr_list | expr ;
func (p *Parser) parseSimpleStmt() (ast.Stmt, error) {
	lhs, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case TOK_DEFINE:
		names := make([]*ast.Ident, len(lhs))
		for i, expr := range lhs {
			id, ok := expr.(*ast.Ident)
			if !ok {
				return nil, p.errorOn(p.tok, "non-name on left side of :=")
			}

			names[i] = id
		}

		if err := p.next(); err != nil {
			return nil, err
		}

		values, err := p.parseExprList()
		if err != nil {
			return nil, err
		}

		return &ast.ShortVarDecl{
			StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBaseOver(lhs[0].Span(), values[len(values)-1].Span())},
			Names:    names,
			Values:   values,
		}, nil
	case TOK_ASSIGN:
		if err := p.next(); err != nil {
			return nil, err
		}

		rhs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}

		return &ast.AssignStmt{
			StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBaseOver(lhs[0].Span(), rhs[len(rhs)-1].Span())},
			Lhs:      lhs,
			Rhs:      rhs,
		}, nil
	default:
		if len(lhs) != 1 {
			return nil, p.reject()
		}

		return &ast.ExprStmt{
			StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBaseOn(lhs[0].Span())},
			X:        lhs[0],
		}, nil
	}
}

// if_stmt := 'if' [simple_stmt ';'] expr block ['else' (if_stmt | block)] ;
func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{}

	first, err := p.parseSimpleStmt()
	if err != nil {
		return nil, err
	}

	if p.got(TOK_SEMICOLON) {
		if err := p.next(); err != nil {
			return nil, err
		}

		stmt.Init = first
		if stmt.Cond, err = p.parseExpr(); err != nil {
			return nil, err
		}
	} else {
		es, ok := first.(*ast.ExprStmt)
		if !ok {
			return nil, p.reject()
		}

		stmt.Cond = es.X
	}

	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	end := stmt.Body.Span()
	if p.got(TOK_ELSE) {
		if err := p.next(); err != nil {
			return nil, err
		}

		if p.got(TOK_IF) {
			if stmt.Else, err = p.parseIfStmt(); err != nil {
				return nil, err
			}
		} else {
			if stmt.Else, err = p.parseBlock(); err != nil {
				return nil, err
			}
		}

		end = stmt.Else.Span()
	}

	stmt.StmtBase = ast.StmtBase{NodeBase: ast.NewNodeBaseOver(start, end)}
	return stmt, nil
}

// for_stmt := 'for' [[simple_stmt] ';' [expr] ';' [simple_stmt] | expr] block ;
func (p *Parser) parseForStmt() (ast.Stmt, error) {
	start := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	stmt := &ast.ForStmt{}
	var err error

	if !p.got(TOK_LBRACE) {
		var first ast.Stmt
		if !p.got(TOK_SEMICOLON) {
			if first, err = p.parseSimpleStmt(); err != nil {
				return nil, err
			}
		}

		if p.got(TOK_SEMICOLON) {
			stmt.Init = first
			if err := p.next(); err != nil {
				return nil, err
			}

			if !p.got(TOK_SEMICOLON) {
				if stmt.Cond, err = p.parseExpr(); err != nil {
					return nil, err
				}
			}

			if _, err := p.want(TOK_SEMICOLON); err != nil {
				return nil, err
			}

			if !p.got(TOK_LBRACE) {
				if stmt.Post, err = p.parseSimpleStmt(); err != nil {
					return nil, err
				}
			}
		} else {
			es, ok := first.(*ast.ExprStmt)
			if !ok {
				return nil, p.reject()
			}

			stmt.Cond = es.X
		}
	}

	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}

	stmt.StmtBase = ast.StmtBase{NodeBase: ast.NewNodeBaseOver(start, stmt.Body.Span())}
	return stmt, nil
}

// return_stmt := 'return' [expr_list] ;
func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	startTok := p.tok
	if err := p.next(); err != nil {
		return nil, err
	}

	stmt := &ast.ReturnStmt{}
	end := startTok.Span

	if !p.got(TOK_SEMICOLON) && !p.got(TOK_RBRACE) {
		var err error
		if stmt.Results, err = p.parseExprList(); err != nil {
			return nil, err
		}

		end = stmt.Results[len(stmt.Results)-1].Span()
	}

	stmt.StmtBase = ast.StmtBase{NodeBase: ast.NewNodeBaseOver(startTok.Span, end)}
	return stmt, nil
}

// branch_stmt := ('break' | 'continue') [IDENT] | 'goto' IDENT ;
func (p *Parser) parseBranchStmt() (ast.Stmt, error) {
	startTok := p.tok

	var kind int
	switch startTok.Kind {
	case TOK_BREAK:
		kind = ast.BreakBranch
	case TOK_CONTINUE:
		kind = ast.ContinueBranch
	default:
		kind = ast.GotoBranch
	}

	if err := p.next(); err != nil {
		return nil, err
	}

	stmt := &ast.BranchStmt{Kind: kind}
	end := startTok.Span

	if p.got(TOK_IDENT) {
		var err error
		if stmt.Label, err = p.parseIdent(); err != nil {
			return nil, err
		}

		end = stmt.Label.Span()
	} else if kind == ast.GotoBranch {
		return nil, p.reject()
	}

	stmt.StmtBase = ast.StmtBase{NodeBase: ast.NewNodeBaseOver(startTok.Span, end)}
	return stmt, nil
}

// labeled_stmt := IDENT ':' stmt ;
func (p *Parser) parseLabeledStmt() (ast.Stmt, error) {
	label, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.want(TOK_COLON); err != nil {
		return nil, err
	}

	// A line break may follow the colon.
	for p.got(TOK_SEMICOLON) {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	inner, err := p.parseStmt()
	if err != nil {
		return nil, err
	}

	return &ast.LabeledStmt{
		StmtBase: ast.StmtBase{NodeBase: ast.NewNodeBaseOver(label.Span(), inner.Span())},
		Label:    label,
		Stmt:     inner,
	}, nil
}
