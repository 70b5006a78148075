package grammar

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/vyPal/kaleido/lib/ast"
	klex "github.com/vyPal/kaleido/lib/lexer"
)

var kaleidoParser = participle.MustBuild[Program](
	participle.Lexer(klex.DefaultDefinition),
	participle.UseLookahead(2),
)

// Build constructs a parser over a different lexer definition, e.g.
// klex.StrictDefinition.
func Build(def lexer.Definition) (*participle.Parser[Program], error) {
	return participle.Build[Program](
		participle.Lexer(def),
		participle.UseLookahead(2),
	)
}

// Parser returns the participle parser; its String method renders the EBNF.
func Parser() *participle.Parser[Program] {
	return kaleidoParser
}

func ParseString(filename, src string) (*Program, error) {
	return kaleidoParser.ParseString(filename, src)
}

func Parse(filename string, r io.Reader) (*Program, error) {
	return kaleidoParser.Parse(filename, r)
}

// AST converts the program into the same trees the recursive-descent parser
// builds, resolving operators with the given precedence table.
func (p *Program) AST(precedence map[rune]int) ([]ast.TopLevel, error) {
	var units []ast.TopLevel
	for _, stmt := range p.Statements {
		switch {
		case stmt.Definition != nil:
			body, err := stmt.Definition.Body.AST(precedence)
			if err != nil {
				return nil, err
			}
			units = append(units, &ast.Function{Proto: stmt.Definition.Prototype.AST(), Body: body})
		case stmt.Extern != nil:
			units = append(units, stmt.Extern.Prototype.AST())
		case stmt.Expression != nil:
			body, err := stmt.Expression.AST(precedence)
			if err != nil {
				return nil, err
			}
			units = append(units, &ast.Function{Proto: &ast.Prototype{}, Body: body})
		}
	}
	return units, nil
}

func (p *Prototype) AST() *ast.Prototype {
	return &ast.Prototype{Name: p.Name, Params: append([]string(nil), p.Params...)}
}

func (e *Expression) AST(precedence map[rune]int) (ast.Expr, error) {
	lhs, err := e.Left.AST(precedence)
	if err != nil {
		return nil, err
	}
	lhs, rest, err := climb(precedence, 0, lhs, e.Right)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("operator %q has no precedence", rest[0].Op)
	}
	return lhs, nil
}

func (p *Primary) AST(precedence map[rune]int) (ast.Expr, error) {
	switch {
	case p.Number != nil:
		return &ast.Number{Value: float64(*p.Number)}, nil
	case p.Call != nil:
		var args []ast.Expr
		for _, arg := range p.Call.Args {
			e, err := arg.AST(precedence)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
		return &ast.Call{Callee: p.Call.Callee, Args: args}, nil
	case p.Variable != nil:
		return &ast.Variable{Name: *p.Variable}, nil
	default:
		return p.SubExpression.AST(precedence)
	}
}

func opPrecedence(precedence map[rune]int, op string) int {
	prec, ok := precedence[[]rune(op)[0]]
	if !ok || prec <= 0 {
		return -1
	}
	return prec
}

// climb folds ops onto lhs while they bind at least as tightly as minPrec and
// returns the ops it did not consume.
func climb(precedence map[rune]int, minPrec int, lhs ast.Expr, ops []*OpPrimary) (ast.Expr, []*OpPrimary, error) {
	for len(ops) > 0 {
		prec := opPrecedence(precedence, ops[0].Op)
		if prec < minPrec {
			break
		}
		op := []rune(ops[0].Op)[0]

		rhs, err := ops[0].Primary.AST(precedence)
		if err != nil {
			return nil, nil, err
		}
		ops = ops[1:]

		if len(ops) > 0 && prec < opPrecedence(precedence, ops[0].Op) {
			rhs, ops, err = climb(precedence, prec+1, rhs, ops)
			if err != nil {
				return nil, nil, err
			}
		}

		lhs = &ast.Binary{Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, ops, nil
}
