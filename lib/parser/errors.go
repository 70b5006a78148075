package parser

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	klex "github.com/vyPal/kaleido/lib/lexer"
)

var ErrUnexpectedToken = errors.New("unexpected token")

// SyntaxError reports the token at which a grammar rule failed.
type SyntaxError struct {
	Msg   string
	Token klex.Token
}

var _ participle.Error = (*SyntaxError)(nil)

func (p *Parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Token: p.tok}
}

func (e *SyntaxError) Error() string {
	return participle.FormatError(e)
}

func (e *SyntaxError) Message() string {
	return e.Msg
}

func (e *SyntaxError) Position() lexer.Position {
	return e.Token.Pos
}

func (e *SyntaxError) Unwrap() error {
	return ErrUnexpectedToken
}
