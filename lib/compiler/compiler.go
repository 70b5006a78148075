package compiler

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/kaleido/lib/ast"
)

// AnonName is the base name given to anonymous top-level expressions.
const AnonName = "__anon_expr"

var (
	ErrUnknownVariable = errors.New("unknown variable name")
	ErrUnknownFunction = errors.New("unknown function referenced")
	ErrArgumentCount   = errors.New("incorrect number of arguments passed")
	ErrUnknownOperator = errors.New("invalid binary operator")
	ErrRedefinition    = errors.New("function cannot be redefined")
)

// Context is the state for compiling one function body.
type Context struct {
	*ir.Block
	*Compiler
	vars map[string]value.Value
}

func NewContext(b *ir.Block, comp *Compiler) *Context {
	return &Context{
		Block:    b,
		Compiler: comp,
		vars:     make(map[string]value.Value),
	}
}

func (c *Context) lookupVariable(name string) (value.Value, error) {
	if v, ok := c.vars[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, name)
}

// Compiler lowers parsed statements into an LLVM module. Every value is a double.
type Compiler struct {
	Module *ir.Module
	anon   int
}

func NewCompiler() *Compiler {
	return &Compiler{
		Module: ir.NewModule(),
	}
}

func (c *Compiler) lookupFunction(name string) (*ir.Func, bool) {
	for _, f := range c.Module.Funcs {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

func (c *Compiler) removeFunction(fn *ir.Func) {
	funcs := []*ir.Func{}
	for _, f := range c.Module.Funcs {
		if f != fn {
			funcs = append(funcs, f)
		}
	}
	c.Module.Funcs = funcs
}

// Compile lowers a parsed top-level statement.
func (c *Compiler) Compile(unit ast.TopLevel) (*ir.Func, error) {
	switch u := unit.(type) {
	case *ast.Function:
		return c.CompileFunction(u)
	case *ast.Prototype:
		return c.CompilePrototype(u)
	default:
		return nil, fmt.Errorf("unsupported statement %T", unit)
	}
}

// CompilePrototype declares a function. Redeclaring a function with the same
// number of parameters returns the existing one.
func (c *Compiler) CompilePrototype(p *ast.Prototype) (*ir.Func, error) {
	name := p.Name
	if name == "" {
		name = c.anonName()
	}

	if fn, ok := c.lookupFunction(name); ok {
		if len(fn.Params) != len(p.Params) {
			return nil, fmt.Errorf("%w: %s declared with %d parameters, have %d", ErrRedefinition, name, len(fn.Params), len(p.Params))
		}
		return fn, nil
	}

	var params []*ir.Param
	for _, param := range p.Params {
		params = append(params, ir.NewParam(param, types.Double))
	}
	return c.Module.NewFunc(name, types.Double, params...), nil
}

func (c *Compiler) anonName() string {
	name := AnonName
	if c.anon > 0 {
		name = fmt.Sprintf("%s.%d", AnonName, c.anon)
	}
	c.anon++
	return name
}

// CompileFunction defines a function body. On failure nothing is added to the module.
func (c *Compiler) CompileFunction(f *ast.Function) (*ir.Func, error) {
	_, existed := c.lookupFunction(f.Proto.Name)
	if f.IsAnonymous() {
		existed = false
	}

	fn, err := c.CompilePrototype(f.Proto)
	if err != nil {
		return nil, err
	}
	if len(fn.Blocks) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrRedefinition, fn.Name())
	}

	ctx := NewContext(fn.NewBlock("entry"), c)
	for i, param := range fn.Params {
		// The definition's parameter names win over an earlier extern's.
		param.SetName(f.Proto.Params[i])
		ctx.vars[param.Name()] = param
	}

	body, err := ctx.compileExpr(f.Body)
	if err != nil {
		fn.Blocks = nil
		if !existed {
			c.removeFunction(fn)
		}
		return nil, err
	}
	ctx.NewRet(body)

	return fn, nil
}
