package grammar

import (
	klex "github.com/vyPal/kaleido/lib/lexer"
)

// Number captures a Number token with the lexer's number conversion.
type Number float64

func (n *Number) Capture(values []string) error {
	*n = Number(klex.ParseNumber(values[0]))
	return nil
}

type Call struct {
	Callee string        `parser:"@Ident '('"`
	Args   []*Expression `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type Primary struct {
	Number        *Number     `parser:"  @Number"`
	Call          *Call       `parser:"| (?= Ident '(') @@"`
	Variable      *string     `parser:"| @Ident"`
	SubExpression *Expression `parser:"| '(' @@ ')'"`
}

type OpPrimary struct {
	Op      string   `parser:"@( '<' | '+' | '-' | '*' )"`
	Primary *Primary `parser:"@@"`
}

type Expression struct {
	Left  *Primary     `parser:"@@"`
	Right []*OpPrimary `parser:"@@*"`
}

type Prototype struct {
	Name   string   `parser:"@Ident"`
	Params []string `parser:"'(' @Ident* ')'"`
}

type Definition struct {
	Prototype *Prototype  `parser:"'def' @@"`
	Body      *Expression `parser:"@@"`
}

type Extern struct {
	Prototype *Prototype `parser:"'extern' @@"`
}

type Statement struct {
	Definition *Definition `parser:"  @@"`
	Extern     *Extern     `parser:"| @@"`
	Expression *Expression `parser:"| @@"`
}

type Program struct {
	Statements []*Statement `parser:"( @@ | ';' )*"`
}
