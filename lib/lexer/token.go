package klex

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Token types. Single-character tokens use the character itself as their type.
const (
	EOF        lexer.TokenType = lexer.EOF
	Def        lexer.TokenType = -2
	Extern     lexer.TokenType = -3
	Identifier lexer.TokenType = -4
	Number     lexer.TokenType = -5
)

var keywords = map[string]lexer.TokenType{
	"def":    Def,
	"extern": Extern,
}

var typeNames = map[lexer.TokenType]string{
	EOF:        "EOF",
	Def:        "Def",
	Extern:     "Extern",
	Identifier: "Ident",
	Number:     "Number",
}

// Token is a single lexical unit.
type Token struct {
	Type lexer.TokenType
	// Text is the matched source text. For EOF it is empty.
	Text string
	// Value is the converted literal of a Number token.
	Value float64
	Pos   lexer.Position
}

// Is reports whether t is the single-character token r.
func (t Token) Is(r rune) bool {
	return t.Type == lexer.TokenType(r)
}

// Char returns the character of a single-character token, or 0.
func (t Token) Char() rune {
	if t.Type <= 0 {
		return 0
	}
	return rune(t.Type)
}

// Participle converts t into a participle token.
func (t Token) Participle() lexer.Token {
	return lexer.Token{Type: t.Type, Value: t.Text, Pos: t.Pos}
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case Def, Extern:
		return t.Text
	case Identifier:
		return fmt.Sprintf("Ident(%s)", t.Text)
	case Number:
		return fmt.Sprintf("Number(%g)", t.Value)
	}
	return fmt.Sprintf("%q", t.Char())
}

// TypeName returns the symbolic name of a token type.
func TypeName(tt lexer.TokenType) string {
	if name, ok := typeNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("%q", rune(tt))
}
