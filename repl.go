package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/kaleido/lib/ast"
	"github.com/vyPal/kaleido/lib/compiler"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "repl",
		Usage:    "Parse statements from stdin as they are typed",
		Category: "interactive",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ir",
				Usage: "Print the LLVM IR for each parsed statement",
			},
		},
		Action: repl,
	})
}

func describe(unit ast.TopLevel) string {
	switch u := unit.(type) {
	case *ast.Prototype:
		return "Parsed an extern."
	case *ast.Function:
		if u.IsAnonymous() {
			return "Parsed a top-level expression."
		}
		return "Parsed a function definition."
	}
	return fmt.Sprintf("Parsed %T.", unit)
}

func repl(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	d, err := newDriver(conf, "<stdin>", c.App.Reader)
	if err != nil {
		return err
	}

	stderr := c.App.ErrWriter
	d.Prompt = func() {
		fmt.Fprint(stderr, conf.Prompt)
	}

	var comp *compiler.Compiler
	if c.Bool("ir") {
		comp = compiler.NewCompiler()
	}

	err = d.Run(func(unit ast.TopLevel) {
		fmt.Fprintln(stderr, color.GreenString("%s", describe(unit)))
		if comp == nil {
			return
		}
		fn, err := comp.Compile(unit)
		if err != nil {
			fmt.Fprintln(stderr, color.RedString("Error: %s", err))
			return
		}
		fmt.Fprintln(c.App.Writer, fn.LLString())
	}, func(err error) {
		fmt.Fprintln(stderr, color.RedString("Error: %s", err))
	})
	fmt.Fprintln(stderr)
	if err != nil {
		return cli.Exit(color.RedString("Error reading input: %s", err), 1)
	}

	if comp != nil {
		fmt.Fprintln(c.App.Writer, comp.Module)
	}
	return nil
}
