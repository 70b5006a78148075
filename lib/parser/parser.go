package parser

import (
	"github.com/vyPal/kaleido/lib/ast"
	klex "github.com/vyPal/kaleido/lib/lexer"
)

// DefaultPrecedence is the binary operator table. Higher binds tighter.
var DefaultPrecedence = map[rune]int{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
}

// Option configures a Parser.
type Option func(*Parser)

// WithPrecedence replaces the operator table.
func WithPrecedence(table map[rune]int) Option {
	return func(p *Parser) {
		p.precedence = make(map[rune]int, len(table))
		for op, prec := range table {
			p.precedence[op] = prec
		}
	}
}

// Parser is a recursive-descent parser with a single token of lookahead.
//
// Every parse method expects Current to be the first token of the construct
// and leaves Current on the first token after it. A failed parse stops at the
// offending token without consuming it.
type Parser struct {
	lx         *klex.Lexer
	tok        klex.Token
	precedence map[rune]int
}

// New creates a Parser reading tokens from lx. The lookahead is empty until
// the first call to Next.
func New(lx *klex.Lexer, options ...Option) *Parser {
	p := &Parser{lx: lx}
	WithPrecedence(DefaultPrecedence)(p)
	for _, option := range options {
		option(p)
	}
	return p
}

// Next advances the lookahead by one token and returns it.
func (p *Parser) Next() klex.Token {
	p.tok = p.lx.Next()
	return p.tok
}

// Current returns the lookahead token.
func (p *Parser) Current() klex.Token {
	return p.tok
}

// Err returns the error that ended the token stream early, if any.
func (p *Parser) Err() error {
	return p.lx.Err()
}

// SetPrecedence installs op as a binary operator. A precedence <= 0 disables it.
func (p *Parser) SetPrecedence(op rune, prec int) {
	p.precedence[op] = prec
}

// Precedence returns the precedence of op, or -1 if op is not a binary operator.
func (p *Parser) Precedence(op rune) int {
	prec, ok := p.precedence[op]
	if !ok || prec <= 0 {
		return -1
	}
	return prec
}

func (p *Parser) tokPrecedence() int {
	if p.tok.Type <= 0 {
		return -1
	}
	return p.Precedence(p.tok.Char())
}

// ParseDefinition parses 'def' prototype expression.
func (p *Parser) ParseDefinition() (*ast.Function, error) {
	p.Next() // "def"
	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Proto: proto, Body: body}, nil
}

// ParseExtern parses 'extern' prototype.
func (p *Parser) ParseExtern() (*ast.Prototype, error) {
	p.Next() // "extern"
	return p.ParsePrototype()
}

// ParseTopLevelExpr wraps a bare expression in an anonymous, parameterless function.
func (p *Parser) ParseTopLevelExpr() (*ast.Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Function{Proto: &ast.Prototype{}, Body: body}, nil
}

// ParsePrototype parses identifier '(' identifier* ')'.
func (p *Parser) ParsePrototype() (*ast.Prototype, error) {
	if p.tok.Type != klex.Identifier {
		return nil, p.errorf("expected function name in prototype")
	}
	name := p.tok.Text
	p.Next() // name

	if !p.tok.Is('(') {
		return nil, p.errorf("expected '(' in prototype")
	}

	var params []string
	for p.Next().Type == klex.Identifier {
		params = append(params, p.tok.Text)
	}

	if !p.tok.Is(')') {
		return nil, p.errorf("expected ')' in prototype")
	}
	p.Next() // ")"

	return &ast.Prototype{Name: name, Params: params}, nil
}
