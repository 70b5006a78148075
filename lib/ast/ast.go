package ast

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Expr is an expression node: *Number, *Variable, *Binary or *Call.
type Expr interface {
	String() string
	expr()
}

// TopLevel is the result of parsing one top-level statement:
// a *Function (definition or anonymous expression) or a *Prototype (extern).
type TopLevel interface {
	String() string
	topLevel()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Variable references a name.
type Variable struct {
	Name string
}

// Binary applies an operator to two operands.
type Binary struct {
	Op  rune
	LHS Expr
	RHS Expr
}

// Call invokes a function.
type Call struct {
	Callee string
	Args   []Expr
}

// Prototype is a function name and its parameter names.
type Prototype struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

// Function is a prototype with a single-expression body.
type Function struct {
	Proto *Prototype `json:"prototype"`
	Body  Expr       `json:"body"`
}

func (*Number) expr()   {}
func (*Variable) expr() {}
func (*Binary) expr()   {}
func (*Call) expr()     {}

func (*Prototype) topLevel() {}
func (*Function) topLevel()  {}

// IsAnonymous reports whether f wraps a bare top-level expression.
func (f *Function) IsAnonymous() bool {
	return f.Proto == nil || f.Proto.Name == ""
}

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (v *Variable) String() string {
	return v.Name
}

func (b *Binary) String() string {
	return "(" + string(b.Op) + " " + b.LHS.String() + " " + b.RHS.String() + ")"
}

func (c *Call) String() string {
	var sb strings.Builder
	sb.WriteString("(call ")
	sb.WriteString(c.Callee)
	for _, arg := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (p *Prototype) String() string {
	return "(extern " + p.signature() + ")"
}

func (p *Prototype) signature() string {
	return p.Name + "(" + strings.Join(p.Params, " ") + ")"
}

func (f *Function) String() string {
	if f.IsAnonymous() {
		return "(toplevel " + f.Body.String() + ")"
	}
	return "(def " + f.Proto.signature() + " " + f.Body.String() + ")"
}

// MarshalJSON writes infinities and NaN as strings ("+Inf", "-Inf", "NaN"),
// which JSON numbers cannot hold.
func (n *Number) MarshalJSON() ([]byte, error) {
	var v interface{} = n.Value
	if math.IsInf(n.Value, 0) || math.IsNaN(n.Value) {
		v = strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	return json.Marshal(struct {
		Kind  string      `json:"kind"`
		Value interface{} `json:"value"`
	}{"number", v})
}

func (p *Prototype) MarshalJSON() ([]byte, error) {
	type prototype Prototype
	proto := prototype(*p)
	if proto.Params == nil {
		proto.Params = []string{}
	}
	return json.Marshal(proto)
}

func (v *Variable) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Name string `json:"name"`
	}{"variable", v.Name})
}

func (b *Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Op   string `json:"op"`
		LHS  Expr   `json:"lhs"`
		RHS  Expr   `json:"rhs"`
	}{"binary", string(b.Op), b.LHS, b.RHS})
}

func (c *Call) MarshalJSON() ([]byte, error) {
	args := c.Args
	if args == nil {
		args = []Expr{}
	}
	return json.Marshal(struct {
		Kind   string `json:"kind"`
		Callee string `json:"callee"`
		Args   []Expr `json:"args"`
	}{"call", c.Callee, args})
}
