package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/vyPal/kaleido/lib/ast"
)

func (ctx *Context) compileExpr(e ast.Expr) (value.Value, error) {
	switch e := e.(type) {
	case *ast.Number:
		return constant.NewFloat(types.Double, e.Value), nil
	case *ast.Variable:
		return ctx.lookupVariable(e.Name)
	case *ast.Binary:
		return ctx.compileBinary(e)
	case *ast.Call:
		return ctx.compileCall(e)
	default:
		return nil, fmt.Errorf("unsupported expression %T", e)
	}
}

func (ctx *Context) compileBinary(b *ast.Binary) (value.Value, error) {
	left, err := ctx.compileExpr(b.LHS)
	if err != nil {
		return nil, err
	}
	right, err := ctx.compileExpr(b.RHS)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case '+':
		return ctx.NewFAdd(left, right), nil
	case '-':
		return ctx.NewFSub(left, right), nil
	case '*':
		return ctx.NewFMul(left, right), nil
	case '<':
		// Booleans are 0.0 or 1.0.
		cmp := ctx.NewFCmp(enum.FPredULT, left, right)
		return ctx.NewUIToFP(cmp, types.Double), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, b.Op)
	}
}

func (ctx *Context) compileCall(c *ast.Call) (value.Value, error) {
	callee, ok := ctx.lookupFunction(c.Callee)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, c.Callee)
	}
	if len(callee.Params) != len(c.Args) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, c.Callee, len(callee.Params), len(c.Args))
	}

	var args []value.Value
	for _, arg := range c.Args {
		v, err := ctx.compileExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return ctx.NewCall(callee, args...), nil
}
