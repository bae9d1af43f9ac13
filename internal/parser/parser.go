// Package parser is a recursive-descent parser producing internal/ast
// values from internal/lexer tokens. Like internal/lexer, it supplements
// the base spec (the lowering core treats the AST as a given input,
// base spec §1) rather than implementing any part of it: no type
// checking and no scope management happens here, only the grammar
// implied by base spec §3's AST shape.
package parser

import (
	"fmt"

	"bee/internal/ast"
	"bee/internal/lexer"
)

// Parser walks a token stream one token at a time, recursive-descent
// style: every parse function begins centered on the first token of its
// production and leaves the parser on the token just past it.
type Parser struct {
	lex *lexer.Lexer
	tok *lexer.Token
}

// New creates a Parser over src's token stream and primes it with the
// first token.
func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseProgram parses a full source file into its top-level declarations.
func (p *Parser) ParseProgram() ([]ast.Stmt, error) {
	var decls []ast.Stmt
	for p.tok.Kind != lexer.TOK_EOF {
		decl, err := p.parseTopDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// -----------------------------------------------------------------------------
// Token-stream helpers.

func (p *Parser) next() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) got(kind lexer.Kind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) expect(kind lexer.Kind) error {
	if !p.got(kind) {
		return fmt.Errorf("parser: line %d: unexpected token %q", p.tok.Line, p.tok.Value)
	}
	return p.next()
}

// -----------------------------------------------------------------------------
// Top level: func/extern declarations (base spec §4.5).

func (p *Parser) parseTopDecl() (ast.Stmt, error) {
	switch p.tok.Kind {
	case lexer.TOK_EXTERN:
		return p.parseExternDecl()
	case lexer.TOK_FUNC:
		return p.parseFunctionDecl()
	default:
		return nil, fmt.Errorf("parser: line %d: expected `func` or `extern`, got %q", p.tok.Line, p.tok.Value)
	}
}

func (p *Parser) parseExternDecl() (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume `extern`
		return nil, err
	}

	retType := p.tok.Value
	if err := p.expect(lexer.TOK_TYPE_NAME); err != nil {
		return nil, err
	}

	name := p.tok.Value
	if err := p.expect(lexer.TOK_IDENT); err != nil {
		return nil, err
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	if err := p.expect(lexer.TOK_SEMI); err != nil {
		return nil, err
	}

	return &ast.ExternDecl{ReturnType: retType, Name: name, Params: params}, nil
}

func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume `func`
		return nil, err
	}

	retType := p.tok.Value
	if err := p.expect(lexer.TOK_TYPE_NAME); err != nil {
		return nil, err
	}

	name := p.tok.Value
	if err := p.expect(lexer.TOK_IDENT); err != nil {
		return nil, err
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDecl{ReturnType: retType, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if err := p.expect(lexer.TOK_LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	for !p.got(lexer.TOK_RPAREN) {
		typ := p.tok.Value
		if err := p.expect(lexer.TOK_TYPE_NAME); err != nil {
			return nil, err
		}
		name := p.tok.Value
		if err := p.expect(lexer.TOK_IDENT); err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Type: typ, Name: name})

		if p.got(lexer.TOK_COMMA) {
			if err := p.next(); err != nil {
				return nil, err
			}
		} else {
			break
		}
	}

	if err := p.expect(lexer.TOK_RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// -----------------------------------------------------------------------------
// Statements (base spec §4.5).

func (p *Parser) parseBlock() (*ast.Block, error) {
	if err := p.expect(lexer.TOK_LBRACE); err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.got(lexer.TOK_RBRACE) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if err := p.expect(lexer.TOK_RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{Stmts: stmts}, nil
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch p.tok.Kind {
	case lexer.TOK_TYPE_NAME:
		return p.parseDeclStmt()
	case lexer.TOK_RETURN:
		return p.parseReturn()
	case lexer.TOK_IF:
		return p.parseIf()
	case lexer.TOK_WHILE:
		return p.parseWhile()
	default:
		return p.parseExprStmt()
	}
}

// parseDeclStmt disambiguates a scalar VarDecl from an ArrayDecl by
// checking for `[]` right after the type name (base spec §4.5's VarDecl
// vs. ArrayDecl statement kinds).
func (p *Parser) parseDeclStmt() (ast.Stmt, error) {
	typ := p.tok.Value
	if err := p.next(); err != nil {
		return nil, err
	}

	if p.got(lexer.TOK_LBRACKET) {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TOK_RBRACKET); err != nil {
			return nil, err
		}

		name := p.tok.Value
		if err := p.expect(lexer.TOK_IDENT); err != nil {
			return nil, err
		}

		var init ast.Expr
		if p.got(lexer.TOK_ASSIGN) {
			if err := p.next(); err != nil {
				return nil, err
			}
			var err error
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}

		if err := p.expect(lexer.TOK_SEMI); err != nil {
			return nil, err
		}
		return &ast.ArrayDecl{ElemType: typ, Name: name, Init: init}, nil
	}

	name := p.tok.Value
	if err := p.expect(lexer.TOK_IDENT); err != nil {
		return nil, err
	}

	var init ast.Expr
	if p.got(lexer.TOK_ASSIGN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		var err error
		init, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.TOK_SEMI); err != nil {
		return nil, err
	}
	return &ast.VarDecl{Type: typ, Name: name, Init: init}, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume `return`
		return nil, err
	}

	var expr ast.Expr
	if !p.got(lexer.TOK_SEMI) {
		var err error
		expr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(lexer.TOK_SEMI); err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

// parseIf always produces a non-nil Else block (possibly empty), matching
// original_source's NConditional representation (base spec §4.5).
func (p *Parser) parseIf() (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume `if`
		return nil, err
	}
	if err := p.expect(lexer.TOK_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOK_RPAREN); err != nil {
		return nil, err
	}

	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	elseBlock := &ast.Block{}
	if p.got(lexer.TOK_ELSE) {
		if err := p.next(); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Cond: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	if err := p.next(); err != nil { // consume `while`
		return nil, err
	}
	if err := p.expect(lexer.TOK_LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOK_RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Loop{Cond: cond, Body: body}, nil
}

func (p *Parser) parseExprStmt() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.TOK_SEMI); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}
