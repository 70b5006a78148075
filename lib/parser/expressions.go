package parser

import (
	"github.com/vyPal/kaleido/lib/ast"
	klex "github.com/vyPal/kaleido/lib/lexer"
)

// ParseExpression parses primary (binop primary)*.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	lhs, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// ParsePrimary parses a number, a variable or call, or a parenthesized expression.
func (p *Parser) ParsePrimary() (ast.Expr, error) {
	switch {
	case p.tok.Type == klex.Identifier:
		return p.parseIdentifierExpr()
	case p.tok.Type == klex.Number:
		return p.parseNumberExpr(), nil
	case p.tok.Is('('):
		return p.parseParenExpr()
	default:
		return nil, p.errorf("unknown token %s when expecting an expression", p.tok)
	}
}

func (p *Parser) parseNumberExpr() ast.Expr {
	n := &ast.Number{Value: p.tok.Value}
	p.Next() // number
	return n
}

func (p *Parser) parseParenExpr() (ast.Expr, error) {
	p.Next() // "("
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.tok.Is(')') {
		return nil, p.errorf("expected ')'")
	}
	p.Next() // ")"
	return e, nil
}

func (p *Parser) parseIdentifierExpr() (ast.Expr, error) {
	name := p.tok.Text
	p.Next() // name

	if !p.tok.Is('(') {
		return &ast.Variable{Name: name}, nil
	}

	p.Next() // "("
	var args []ast.Expr
	if !p.tok.Is(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.tok.Is(')') {
				break
			}
			if !p.tok.Is(',') {
				return nil, p.errorf("expected ')' or ',' in argument list")
			}
			p.Next() // ","
		}
	}
	p.Next() // ")"

	return &ast.Call{Callee: name, Args: args}, nil
}

// parseBinOpRHS folds operators binding at least as tightly as minPrec onto lhs.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expr) (ast.Expr, error) {
	for {
		prec := p.tokPrecedence()
		if prec < minPrec {
			return lhs, nil
		}

		op := p.tok.Char()
		p.Next() // op

		rhs, err := p.ParsePrimary()
		if err != nil {
			return nil, err
		}

		// A tighter operator after rhs takes rhs as its left operand.
		if prec < p.tokPrecedence() {
			rhs, err = p.parseBinOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &ast.Binary{Op: op, LHS: lhs, RHS: rhs}
	}
}
