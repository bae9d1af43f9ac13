package parser

import (
	"fmt"
	"strconv"

	"bee/internal/ast"
	"bee/internal/lexer"
)

// parseExpr = assignment (base spec §4.4's Expr grammar, expanded with the
// assignment forms §4.5 names as their own statement-producing expression).
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

var assignOps = map[lexer.Kind]ast.Op{
	lexer.TOK_PLUSEQ:  ast.PLUSASN,
	lexer.TOK_MINUSEQ: ast.MINUSASN,
	lexer.TOK_STAREQ:  ast.MULASN,
	lexer.TOK_SLASHEQ: ast.DIVASN,
}

// parseAssignment parses a comparison expression and, if followed by an
// assignment operator, reinterprets the left side as an assignment target
// (an Identifier or an ArrayRead — base spec §4.5's Assign/ArrayWrite
// statement kinds, modeled here as expressions so they compose inside
// for-style constructs and as bare expression statements alike).
func (p *Parser) parseAssignment() (ast.Expr, error) {
	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	if p.got(lexer.TOK_ASSIGN) {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return p.buildAssign(lhs, ast.PLUS, rhs, false)
	}

	if op, ok := assignOps[p.tok.Kind]; ok {
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return p.buildAssign(lhs, op, rhs, true)
	}

	return lhs, nil
}

func (p *Parser) buildAssign(target ast.Expr, op ast.Op, rhs ast.Expr, compound bool) (ast.Expr, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return &ast.Assign{Target: t.Name, Op: op, RHS: rhs, Compound: compound}, nil
	case *ast.ArrayRead:
		return &ast.ArrayWrite{Array: t.Array, Index: t.Index, Op: op, RHS: rhs, Compound: compound}, nil
	default:
		return nil, fmt.Errorf("parser: invalid assignment target")
	}
}

var comparisonOps = map[lexer.Kind]ast.Op{
	lexer.TOK_EQ:  ast.EQ,
	lexer.TOK_NEQ: ast.NE,
	lexer.TOK_LT:  ast.LT,
	lexer.TOK_LE:  ast.LE,
	lexer.TOK_GT:  ast.GT,
	lexer.TOK_GE:  ast.GE,
}

// parseComparison = additive {('==' | '!=' | '<' | '<=' | '>' | '>=') additive}
func (p *Parser) parseComparison() (ast.Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := comparisonOps[p.tok.Kind]
		if !ok {
			return lhs, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

var additiveOps = map[lexer.Kind]ast.Op{
	lexer.TOK_PLUS:  ast.PLUS,
	lexer.TOK_MINUS: ast.MINUS,
}

// parseAdditive = term {('+' | '-') term}
func (p *Parser) parseAdditive() (ast.Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := additiveOps[p.tok.Kind]
		if !ok {
			return lhs, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

var termOps = map[lexer.Kind]ast.Op{
	lexer.TOK_STAR:  ast.MUL,
	lexer.TOK_SLASH: ast.DIV,
}

// parseTerm = unary {('*' | '/') unary}
func (p *Parser) parseTerm() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := termOps[p.tok.Kind]
		if !ok {
			return lhs, nil
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryOp{Op: op, LHS: lhs, RHS: rhs}
	}
}

// parseUnary = ['-' | '!'] postfix
func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.tok.Kind {
	case lexer.TOK_MINUS:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.MINUS, Operand: operand}, nil
	case lexer.TOK_NOT:
		if err := p.next(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: ast.NOT, Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix = atom {'[' expr ']'}
// An array index trailer turns the preceding atom into an ArrayRead, which
// parseAssignment may further reinterpret as an ArrayWrite target.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for p.got(lexer.TOK_LBRACKET) {
		id, ok := atom.(*ast.Identifier)
		if !ok {
			return nil, fmt.Errorf("parser: line %d: index target must be an identifier", p.tok.Line)
		}

		if err := p.next(); err != nil {
			return nil, err
		}
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TOK_RBRACKET); err != nil {
			return nil, err
		}
		atom = &ast.ArrayRead{Array: id.Name, Index: idx}
	}

	return atom, nil
}

// parseAtom = INTLIT | DOUBLELIT | STRINGLIT | BOOLLIT | IDENT ['(' args ')']
//   | '(' expr ')' | '[' args ']'
func (p *Parser) parseAtom() (ast.Expr, error) {
	switch p.tok.Kind {
	case lexer.TOK_INTLIT:
		v, err := strconv.ParseInt(p.tok.Value, 10, 64)
		if err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.IntegerLiteral{Value: v}, nil

	case lexer.TOK_DOUBLELIT:
		v, err := strconv.ParseFloat(p.tok.Value, 64)
		if err != nil {
			return nil, err
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.DoubleLiteral{Value: v}, nil

	case lexer.TOK_STRINGLIT:
		raw := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.StringLiteral{Raw: raw}, nil

	case lexer.TOK_BOOLLIT:
		v := p.tok.Value == "true"
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.BoolLiteral{Value: v}, nil

	case lexer.TOK_IDENT:
		name := p.tok.Value
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.got(lexer.TOK_LPAREN) {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &ast.Call{Callee: name, Args: args}, nil
		}
		return &ast.Identifier{Name: name}, nil

	case lexer.TOK_LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.TOK_RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TOK_LBRACKET:
		if err := p.next(); err != nil {
			return nil, err
		}
		var items []ast.Expr
		for !p.got(lexer.TOK_RBRACKET) {
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.got(lexer.TOK_COMMA) {
				if err := p.next(); err != nil {
					return nil, err
				}
			} else {
				break
			}
		}
		if err := p.expect(lexer.TOK_RBRACKET); err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Items: items}, nil

	default:
		return nil, fmt.Errorf("parser: line %d: unexpected token %q", p.tok.Line, p.tok.Value)
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, error) {
	if err := p.expect(lexer.TOK_LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Expr
	for !p.got(lexer.TOK_RPAREN) {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
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
	return args, nil
}
