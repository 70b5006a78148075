package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"unicode/utf8"

	"github.com/vyPal/kaleido/lib/parser"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the configuration file looked up in the working directory.
const ConfigFile = "kaleido.yaml"

type Config struct {
	Prompt        string         `yaml:"prompt"`
	Precedence    map[string]int `yaml:"precedence"`
	StrictNumbers bool           `yaml:"strictNumbers"`
	NoColor       bool           `yaml:"noColor"`
}

func (c *Config) CreateDefault() {
	c.Prompt = "ready> "
	c.Precedence = make(map[string]int, len(parser.DefaultPrecedence))
	for op, prec := range parser.DefaultPrecedence {
		c.Precedence[string(op)] = prec
	}
	c.StrictNumbers = false
	c.NoColor = false
}

// Save writes the config as YAML and reports whether it did. An existing
// file is only replaced when confirm agrees; a nil confirm always replaces it.
func (c *Config) Save(filepath string, confirm func() (bool, error)) (bool, error) {
	if _, err := os.Stat(filepath); !os.IsNotExist(err) && confirm != nil {
		ok, err := confirm()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return false, err
	}

	return true, os.WriteFile(filepath, yml, 0644)
}

// PrecedenceTable converts the configured precedences into a parser table.
// Keys must be single characters.
func (c Config) PrecedenceTable() (map[rune]int, error) {
	table := make(map[rune]int, len(c.Precedence))
	for op, prec := range c.Precedence {
		if utf8.RuneCountInString(op) != 1 {
			return nil, fmt.Errorf("precedence: operator %q must be a single character", op)
		}
		r, _ := utf8.DecodeRuneInString(op)
		table[r] = prec
	}
	return table, nil
}

// LoadConfig reads a config file. Fields it leaves out keep their defaults.
func LoadConfig(filepath string) (Config, error) {
	var conf Config
	conf.CreateDefault()

	file, err := os.Open(filepath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	err = decoder.Decode(&conf)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: %w", filepath, err)
	}

	return conf, nil
}

// GetConfig reads ConfigFile from dir, falling back to the defaults when
// there is none.
func GetConfig(dir string) (Config, error) {
	conf, err := LoadConfig(path.Join(dir, ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		conf.CreateDefault()
		return conf, nil
	}
	return conf, err
}
