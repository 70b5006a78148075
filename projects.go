package main

import (
	"bufio"
	"fmt"
	"os"
	"path"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/kaleido/lib/project"
	"github.com/vyPal/kaleido/util"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Write a default " + project.ConfigFile,
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "prompt",
				Aliases: []string{"p"},
				Usage:   "The REPL prompt",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Use defaults for everything that is not set by a flag",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); os.IsNotExist(err) {
		err := os.MkdirAll(rootDir, 0755)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, "Created directory:", rootDir)
	}

	conf := project.Config{}
	conf.CreateDefault()

	in := bufio.NewReader(c.App.Reader)
	if c.IsSet("prompt") {
		conf.Prompt = c.String("prompt")
	} else if !c.Bool("yes") {
		prompt, err := util.PromptString(in, c.App.Writer, "REPL prompt", conf.Prompt)
		if err != nil {
			return err
		}
		conf.Prompt = prompt
	}

	confPath := path.Join(rootDir, project.ConfigFile)
	var confirm func() (bool, error)
	if !c.Bool("force") {
		confirm = func() (bool, error) {
			if c.Bool("yes") {
				return false, fmt.Errorf("%s already exists, use --force to overwrite", confPath)
			}
			return util.PromptYN(in, c.App.Writer, confPath+" already exists. Overwrite?", false)
		}
	}

	written, err := conf.Save(confPath, confirm)
	if err != nil {
		return cli.Exit(color.RedString("Error writing config: %s", err), 1)
	}
	if !written {
		return nil
	}

	fmt.Fprintln(c.App.Writer, "Created file:", confPath)
	return nil
}
