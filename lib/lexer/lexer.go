package klex

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

const eof rune = -1

// Option configures a Lexer.
type Option func(*Lexer)

// Strict limits number literals to digits and '.'. By default a number is any
// run of letters, digits and '.' that starts with a digit or '.', so "1abc"
// lexes as a single Number token with value 1.
func Strict() Option {
	return func(l *Lexer) {
		l.strict = true
	}
}

// Lexer turns characters from a reader into tokens, one per call to Next.
// It is not safe for concurrent use.
type Lexer struct {
	src  io.RuneReader
	last rune
	done bool
	err  error

	pos  lexer.Position // position of last
	next lexer.Position

	strict bool

	// IdentifierStr holds the text of the most recent Identifier or keyword.
	IdentifierStr string
	// NumVal holds the value of the most recent Number.
	NumVal float64
}

// New creates a Lexer reading from r. The reader is only read on demand.
func New(filename string, r io.Reader, options ...Option) *Lexer {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	l := &Lexer{
		src:  rr,
		last: ' ',
		next: lexer.Position{Filename: filename, Line: 1, Column: 1},
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// LexString returns a Lexer over a string.
func LexString(filename, s string, options ...Option) *Lexer {
	return New(filename, strings.NewReader(s), options...)
}

// Err returns the first non-EOF error returned by the underlying reader.
func (l *Lexer) Err() error {
	return l.err
}

func (l *Lexer) advance() {
	l.pos = l.next
	if l.done {
		l.last = eof
		return
	}
	r, size, err := l.src.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = err
		}
		l.done = true
		l.last = eof
		return
	}
	l.last = r
	l.next.Offset += size
	if r == '\n' {
		l.next.Line++
		l.next.Column = 1
	} else {
		l.next.Column++
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	for {
		for unicode.IsSpace(l.last) {
			l.advance()
		}
		if l.last != '#' {
			break
		}
		// Comment until end of line.
		for l.last != eof && l.last != '\n' {
			l.advance()
		}
	}

	start := l.pos
	switch {
	case unicode.IsLetter(l.last):
		text := l.scan(isIdentChar)
		l.IdentifierStr = text
		if tt, ok := keywords[text]; ok {
			return Token{Type: tt, Text: text, Pos: start}
		}
		return Token{Type: Identifier, Text: text, Pos: start}

	case unicode.IsDigit(l.last) || l.last == '.':
		accept := isNumberChar
		if l.strict {
			accept = isDigitOrDot
		}
		text := l.scan(accept)
		l.NumVal = ParseNumber(text)
		return Token{Type: Number, Text: text, Value: l.NumVal, Pos: start}

	case l.last == eof:
		return Token{Type: EOF, Pos: start}
	}

	ch := l.last
	l.advance()
	return Token{Type: lexer.TokenType(ch), Text: string(ch), Pos: start}
}

// scan collects the current character and every following one accepted by fn.
func (l *Lexer) scan(fn func(rune) bool) string {
	var sb strings.Builder
	sb.WriteRune(l.last)
	for l.advance(); fn(l.last); l.advance() {
		sb.WriteRune(l.last)
	}
	return sb.String()
}

func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberChar(r rune) bool {
	return isIdentChar(r) || r == '.'
}

func isDigitOrDot(r rune) bool {
	return unicode.IsDigit(r) || r == '.'
}

// ParseNumber converts number text the way strtod does: the longest prefix
// that is a decimal float literal wins, and text with no such prefix is 0.
// Out of range values are ±Inf. Hexadecimal forms are not recognised.
func ParseNumber(s string) float64 {
	prefix := floatPrefix(s)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// floatPrefix returns the longest prefix of s matching
// digits [ '.' digits ] [ ('e'|'E') ['+'|'-'] digits ] with at least one
// mantissa digit.
func floatPrefix(s string) string {
	i, digits := 0, 0
	for ; i < len(s) && isASCIIDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		for i++; i < len(s) && isASCIIDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return ""
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isASCIIDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	return s[:end]
}

func isASCIIDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

// Tokenize lexes src to completion. The returned slice always ends with EOF.
func Tokenize(filename, src string, options ...Option) []Token {
	l := LexString(filename, src, options...)
	var tokens []Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}
