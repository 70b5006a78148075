package klex

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func types(tokens []Token) []lexer.TokenType {
	out := make([]lexer.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	testCases := []struct {
		In    string
		Types []lexer.TokenType
		Texts []string
	}{
		{
			In:    ``,
			Types: []lexer.TokenType{EOF},
			Texts: []string{""},
		},
		{
			In:    " \t\n  ",
			Types: []lexer.TokenType{EOF},
			Texts: []string{""},
		},
		{
			In:    `def foo(a b) a+b`,
			Types: []lexer.TokenType{Def, Identifier, '(', Identifier, Identifier, ')', Identifier, '+', Identifier, EOF},
			Texts: []string{"def", "foo", "(", "a", "b", ")", "a", "+", "b", ""},
		},
		{
			In:    `extern sin(x);`,
			Types: []lexer.TokenType{Extern, Identifier, '(', Identifier, ')', ';', EOF},
			Texts: []string{"extern", "sin", "(", "x", ")", ";", ""},
		},
		{
			In:    `x1 < 2.5*y`,
			Types: []lexer.TokenType{Identifier, '<', Number, '*', Identifier, EOF},
			Texts: []string{"x1", "<", "2.5", "*", "y", ""},
		},
		{
			In:    `Def DEF define externs`,
			Types: []lexer.TokenType{Identifier, Identifier, Identifier, Identifier, EOF},
			Texts: []string{"Def", "DEF", "define", "externs", ""},
		},
		{
			In:    `foo(1,2)`,
			Types: []lexer.TokenType{Identifier, '(', Number, ',', Number, ')', EOF},
			Texts: []string{"foo", "(", "1", ",", "2", ")", ""},
		},
		{
			In:    `a!=b`,
			Types: []lexer.TokenType{Identifier, '!', '=', Identifier, EOF},
			Texts: []string{"a", "!", "=", "b", ""},
		},
	}

	for _, tc := range testCases {
		tokens := Tokenize("", tc.In)
		assert.Equal(t, tc.Types, types(tokens), "input: %q", tc.In)
		assert.Equal(t, tc.Texts, texts(tokens), "input: %q", tc.In)
	}
}

func TestSideChannels(t *testing.T) {
	l := LexString("", "foo 4.5 bar")

	tok := l.Next()
	assert.Equal(t, Identifier, tok.Type)
	assert.Equal(t, "foo", l.IdentifierStr)

	tok = l.Next()
	assert.Equal(t, Number, tok.Type)
	assert.Equal(t, 4.5, l.NumVal)
	assert.Equal(t, 4.5, tok.Value)
	assert.Equal(t, "foo", l.IdentifierStr)

	tok = l.Next()
	assert.Equal(t, Identifier, tok.Type)
	assert.Equal(t, "bar", l.IdentifierStr)
	assert.Equal(t, 4.5, l.NumVal)
}

func TestComments(t *testing.T) {
	withComment := Tokenize("", "1 # comment\n+2")
	without := Tokenize("", "1\n+2")

	assert.Equal(t, types(without), types(withComment))
	assert.Equal(t, texts(without), texts(withComment))

	tokens := Tokenize("", "# only a comment")
	assert.Equal(t, []lexer.TokenType{EOF}, types(tokens))

	tokens = Tokenize("", "# one\n# two\n\n x # three")
	assert.Equal(t, []lexer.TokenType{Identifier, EOF}, types(tokens))
}

func TestTokenizeIsRepeatable(t *testing.T) {
	src := "def fib(x) if x < 3 then 1 else fib(x-1)+fib(x-2) # tail\n fib(10);"
	first := Tokenize("fib.k", src)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Tokenize("fib.k", src))
	}
}

func TestPermissiveNumbers(t *testing.T) {
	testCases := []struct {
		In    string
		Text  string
		Value float64
	}{
		{"1", "1", 1},
		{"42.125", "42.125", 42.125},
		{".5", ".5", 0.5},
		{".", ".", 0},
		{"1.2.3", "1.2.3", 1.2},
		{"12abc", "12abc", 12},
		{"1e3", "1e3", 1000},
		{"2x", "2x", 2},
		{"0x10", "0x10", 0},
	}

	for _, tc := range testCases {
		tokens := Tokenize("", tc.In)
		require.Len(t, tokens, 2, "input: %q", tc.In)
		assert.Equal(t, Number, tokens[0].Type)
		assert.Equal(t, tc.Text, tokens[0].Text)
		assert.Equal(t, tc.Value, tokens[0].Value, "input: %q", tc.In)
	}
}

func TestStrictNumbers(t *testing.T) {
	tokens := Tokenize("", "12abc 1.5", Strict())
	assert.Equal(t, []lexer.TokenType{Number, Identifier, Number, EOF}, types(tokens))
	assert.Equal(t, []string{"12", "abc", "1.5", ""}, texts(tokens))
	assert.Equal(t, float64(12), tokens[0].Value)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, float64(0), ParseNumber(""))
	assert.Equal(t, float64(0), ParseNumber("abc"))
	assert.Equal(t, 3.25, ParseNumber("3.25"))
	assert.True(t, math.IsInf(ParseNumber("1e999"), 1))

	testCases := []struct {
		In    string
		Value float64
	}{
		{".", 0},
		{"1e", 1},
		{"1e+", 1},
		{"2E-2x", 0.02},
		{"1.5e3.2", 1500},
		{"7..1", 7},
		{"0x1p4", 0},
		{"1e-999", 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.Value, ParseNumber(tc.In), "input: %q", tc.In)
	}
}

func TestLongNumberRun(t *testing.T) {
	const n = 200000
	src := strings.Repeat("1", n) + strings.Repeat("a", n)

	start := time.Now()
	tokens := Tokenize("", src)
	elapsed := time.Since(start)

	require.Len(t, tokens, 2)
	assert.Equal(t, Number, tokens[0].Type)
	assert.Len(t, tokens[0].Text, 2*n)
	assert.True(t, math.IsInf(tokens[0].Value, 1))
	assert.Less(t, elapsed, 2*time.Second)
}

func TestPositions(t *testing.T) {
	tokens := Tokenize("test.k", "def f(x)\n  x*2")
	require.Len(t, tokens, 9)

	assert.Equal(t, lexer.Position{Filename: "test.k", Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, lexer.Position{Filename: "test.k", Offset: 4, Line: 1, Column: 5}, tokens[1].Pos)
	assert.Equal(t, lexer.Position{Filename: "test.k", Offset: 11, Line: 2, Column: 3}, tokens[5].Pos)
	assert.Equal(t, lexer.Position{Filename: "test.k", Offset: 12, Line: 2, Column: 4}, tokens[6].Pos)
	assert.Equal(t, EOF, tokens[8].Type)
	assert.Equal(t, 2, tokens[8].Pos.Line)
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	l := New("", &failingReader{data: "a b", err: boom})

	assert.Equal(t, Identifier, l.Next().Type)
	assert.Equal(t, Identifier, l.Next().Type)
	assert.Equal(t, EOF, l.Next().Type)
	assert.Equal(t, EOF, l.Next().Type)
	assert.ErrorIs(t, l.Err(), boom)
}

type countingReader struct {
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads++
	return 0, io.EOF
}

func (r *countingReader) ReadRune() (rune, int, error) {
	r.reads++
	return 0, 0, io.EOF
}

func TestSourceNotReadAfterEOF(t *testing.T) {
	src := &countingReader{}
	l := New("", src)

	for i := 0; i < 3; i++ {
		assert.Equal(t, EOF, l.Next().Type)
	}
	assert.Equal(t, 1, src.reads)
	assert.NoError(t, l.Err())
}

func TestTokenString(t *testing.T) {
	tokens := Tokenize("", "def x 1.5 +")
	assert.Equal(t, "def", tokens[0].String())
	assert.Equal(t, "Ident(x)", tokens[1].String())
	assert.Equal(t, "Number(1.5)", tokens[2].String())
	assert.Equal(t, "'+'", tokens[3].String())
	assert.Equal(t, "EOF", tokens[4].String())
	assert.True(t, tokens[3].Is('+'))
	assert.Equal(t, '+', tokens[3].Char())
	assert.Equal(t, rune(0), tokens[1].Char())
	assert.Equal(t, "Ident", TypeName(Identifier))
	assert.Equal(t, "'('", TypeName('('))
}
