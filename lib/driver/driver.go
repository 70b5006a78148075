package driver

import (
	"io"

	"github.com/vyPal/kaleido/lib/ast"
	klex "github.com/vyPal/kaleido/lib/lexer"
	"github.com/vyPal/kaleido/lib/parser"
)

// Driver reads top-level statements from a Parser one at a time.
type Driver struct {
	p      *parser.Parser
	primed bool

	// Prompt, if set, is called before each read that starts a new statement.
	Prompt func()
}

func New(p *parser.Parser) *Driver {
	return &Driver{p: p}
}

// Parser returns the underlying parser.
func (d *Driver) Parser() *parser.Parser {
	return d.p
}

func (d *Driver) advance() {
	if d.Prompt != nil {
		d.Prompt()
	}
	d.p.Next()
}

// Next parses the next top-level statement, returning a *ast.Function for
// definitions and bare expressions or a *ast.Prototype for externs. It
// returns io.EOF once the input is exhausted.
//
// When a statement fails to parse the offending token is skipped, so the
// following call resumes with the rest of the input.
func (d *Driver) Next() (ast.TopLevel, error) {
	if !d.primed {
		d.primed = true
		d.advance()
	}

	for {
		tok := d.p.Current()
		switch {
		case tok.Type == klex.EOF:
			return nil, io.EOF
		case tok.Is(';'):
			d.advance() // ";"
			continue
		}

		unit, err := d.parseTopLevel(tok)
		if err != nil {
			d.p.Next() // skip for error recovery
			return nil, err
		}
		return unit, nil
	}
}

func (d *Driver) parseTopLevel(tok klex.Token) (ast.TopLevel, error) {
	switch tok.Type {
	case klex.Def:
		fn, err := d.p.ParseDefinition()
		if err != nil {
			return nil, err
		}
		return fn, nil
	case klex.Extern:
		proto, err := d.p.ParseExtern()
		if err != nil {
			return nil, err
		}
		return proto, nil
	default:
		fn, err := d.p.ParseTopLevelExpr()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
}

// Run parses statements until the input is exhausted, passing each parsed
// statement to handle and each syntax error to report. It returns the error
// that ended the input early, if any.
func (d *Driver) Run(handle func(ast.TopLevel), report func(error)) error {
	for {
		unit, err := d.Next()
		if err == io.EOF {
			return d.p.Err()
		}
		if err != nil {
			report(err)
			continue
		}
		handle(unit)
	}
}

// Collect parses every statement from the driver's input.
func (d *Driver) Collect() ([]ast.TopLevel, []error, error) {
	var units []ast.TopLevel
	var errs []error
	err := d.Run(func(u ast.TopLevel) {
		units = append(units, u)
	}, func(err error) {
		errs = append(errs, err)
	})
	return units, errs, err
}
