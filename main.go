package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/kaleido/lib/driver"
	klex "github.com/vyPal/kaleido/lib/lexer"
	"github.com/vyPal/kaleido/lib/parser"
	"github.com/vyPal/kaleido/lib/project"
)

var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "kaleido",
		Usage:                  "A lexer and parser for the Kaleidoscope language",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "The path to the config file. ",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
		},
		Commands: commands,
		Action:   repl,
	}
}

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (project.Config, error) {
	var conf project.Config
	var err error

	if path := c.String("config"); path != "" {
		conf, err = project.LoadConfig(path)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err != nil {
			return conf, cli.Exit(color.RedString("Error getting current working directory: %s", err), 1)
		}
		conf, err = project.GetConfig(cwd)
	}
	if err != nil {
		return conf, cli.Exit(color.RedString("Error loading config: %s", err), 1)
	}

	if conf.NoColor || c.Bool("no-color") {
		color.NoColor = true
	}
	return conf, nil
}

func lexerOptions(conf project.Config) []klex.Option {
	var options []klex.Option
	if conf.StrictNumbers {
		options = append(options, klex.Strict())
	}
	return options
}

func newDriver(conf project.Config, filename string, r io.Reader) (*driver.Driver, error) {
	table, err := conf.PrecedenceTable()
	if err != nil {
		return nil, cli.Exit(color.RedString("Error loading config: %s", err), 1)
	}
	lx := klex.New(filename, r, lexerOptions(conf)...)
	return driver.New(parser.New(lx, parser.WithPrecedence(table))), nil
}
