package klex

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// DefaultDefinition exposes the lexer to participle.
	DefaultDefinition lexer.Definition = &Definition{}

	// StrictDefinition is DefaultDefinition with Strict numbers.
	StrictDefinition lexer.Definition = &Definition{Options: []Option{Strict()}}
)

// Definition is a participle lexer.Definition backed by Lexer.
type Definition struct {
	Options []Option
}

func (d *Definition) Symbols() map[string]lexer.TokenType {
	symbols := make(map[string]lexer.TokenType, len(typeNames))
	for tt, name := range typeNames {
		symbols[name] = tt
	}
	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	return &tokenStream{lx: New(filename, r, d.Options...)}, nil
}

// LexString returns a participle lexer over a string.
func (d *Definition) LexString(filename, s string) (lexer.Lexer, error) {
	return d.Lex(filename, strings.NewReader(s))
}

type tokenStream struct {
	lx *Lexer
}

func (t *tokenStream) Next() (lexer.Token, error) {
	tok := t.lx.Next()
	if err := t.lx.Err(); err != nil {
		return lexer.Token{}, err
	}
	return tok.Participle(), nil
}
