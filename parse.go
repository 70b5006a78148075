package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/kaleido/lib/ast"
	"github.com/vyPal/kaleido/lib/compiler"
	"github.com/vyPal/kaleido/lib/grammar"
	klex "github.com/vyPal/kaleido/lib/lexer"
	"github.com/vyPal/kaleido/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "parse",
		Usage:     "Parse a Kaleidoscope file",
		Category:  "compile",
		ArgsUsage: "[file | -]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Parse a string instead of a file",
			},
			&cli.BoolFlag{
				Name:    "dump-ast",
				Aliases: []string{"d"},
				Usage:   "Print the AST as JSON",
			},
			&cli.BoolFlag{
				Name:    "tokens",
				Aliases: []string{"t"},
				Usage:   "Only lex the input and print the tokens",
			},
			&cli.BoolFlag{
				Name: "ebnf",
				Usage: "Print the EBNF grammar for Kaleidoscope. " +
					"Useful for debugging the parser.",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Check the result against the EBNF grammar",
			},
		},
		Action: parse,
	},
		&cli.Command{
			Name:      "ir",
			Usage:     "Compile a Kaleidoscope file to LLVM IR",
			Category:  "compile",
			ArgsUsage: "[file | -]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "input-str",
					Aliases: []string{"s"},
					Usage:   "Compile a string instead of a file",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Write the IR to this file instead of stdout",
				},
			},
			Action: emitIR,
		},
	)
}

func readSource(c *cli.Context) (string, string, error) {
	if c.IsSet("input-str") {
		return "<string>", c.String("input-str"), nil
	}

	filename := c.Args().First()
	if filename == "" {
		return "", "", cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	var src []byte
	var err error
	if filename == "-" {
		filename = "<stdin>"
		src, err = io.ReadAll(c.App.Reader)
	} else {
		src, err = os.ReadFile(filename)
	}
	if err != nil {
		return "", "", cli.Exit(color.RedString("Error reading file: %s", err), 1)
	}
	return filename, string(src), nil
}

// parseSource parses every statement, printing syntax errors as they occur.
func parseSource(c *cli.Context, conf project.Config, filename, src string) ([]ast.TopLevel, int, error) {
	d, err := newDriver(conf, filename, strings.NewReader(src))
	if err != nil {
		return nil, 0, err
	}

	units, errs, err := d.Collect()
	if err != nil {
		return nil, 0, err
	}
	for _, e := range errs {
		fmt.Fprintln(c.App.ErrWriter, color.RedString("Error: %s", e))
	}
	return units, len(errs), nil
}

type dumpedUnit struct {
	Kind string       `json:"kind"`
	Unit ast.TopLevel `json:"unit"`
}

func unitKind(unit ast.TopLevel) string {
	if fn, ok := unit.(*ast.Function); ok {
		if fn.IsAnonymous() {
			return "expression"
		}
		return "definition"
	}
	return "extern"
}

func parse(c *cli.Context) error {
	if c.Bool("ebnf") {
		fmt.Fprintln(c.App.Writer, grammar.Parser().String())
		return nil
	}

	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	filename, src, err := readSource(c)
	if err != nil {
		return err
	}

	if c.Bool("tokens") {
		for _, tok := range klex.Tokenize(filename, src, lexerOptions(conf)...) {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", tok.Pos, tok)
		}
		return nil
	}

	units, failed, err := parseSource(c, conf, filename, src)
	if err != nil {
		return err
	}

	if c.Bool("dump-ast") {
		dump := []dumpedUnit{}
		for _, unit := range units {
			dump = append(dump, dumpedUnit{Kind: unitKind(unit), Unit: unit})
		}
		encoder := json.NewEncoder(c.App.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(dump); err != nil {
			return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
		}
	} else {
		for _, unit := range units {
			fmt.Fprintln(c.App.Writer, unit)
		}
	}

	if failed > 0 {
		return cli.Exit(color.RedString("Error: %d statement(s) failed to parse", failed), 1)
	}

	if c.Bool("check") {
		return checkGrammar(conf, filename, src, units)
	}
	return nil
}

func checkGrammar(conf project.Config, filename, src string, units []ast.TopLevel) error {
	def := klex.DefaultDefinition
	if conf.StrictNumbers {
		def = klex.StrictDefinition
	}
	p, err := grammar.Build(def)
	if err != nil {
		return err
	}

	prog, err := p.ParseString(filename, src)
	if err != nil {
		return cli.Exit(color.RedString("Error: grammar check: %s", err), 1)
	}
	table, err := conf.PrecedenceTable()
	if err != nil {
		return err
	}
	want, err := prog.AST(table)
	if err != nil {
		return cli.Exit(color.RedString("Error: grammar check: %s", err), 1)
	}

	if len(want) != len(units) {
		return cli.Exit(color.RedString("Error: grammar check: %d statements, parser produced %d", len(want), len(units)), 1)
	}
	for i := range want {
		if want[i].String() != units[i].String() {
			return cli.Exit(color.RedString("Error: grammar check: statement %d is %s, parser produced %s", i+1, want[i], units[i]), 1)
		}
	}
	return nil
}

func emitIR(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}

	filename, src, err := readSource(c)
	if err != nil {
		return err
	}

	units, failed, err := parseSource(c, conf, filename, src)
	if err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(color.RedString("Error: %d statement(s) failed to parse", failed), 1)
	}

	comp := compiler.NewCompiler()
	comp.Module.SourceFilename = filename
	for _, unit := range units {
		if _, err := comp.Compile(unit); err != nil {
			return cli.Exit(color.RedString("Error compiling: %s", err), 1)
		}
	}

	out := c.String("output")
	if out == "" {
		fmt.Fprint(c.App.Writer, comp.Module.String())
		return nil
	}
	err = os.WriteFile(out, []byte(comp.Module.String()), 0644)
	if err != nil {
		return cli.Exit(color.RedString("Error writing IR: %s", err), 1)
	}
	return nil
}
