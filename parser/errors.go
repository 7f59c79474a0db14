package parser

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel all parser failures wrap; callers can classify a
// failure with errors.Is(err, parser.ErrParse) without inspecting positions.
var ErrParse = errors.New("parse error")

// Error is a parse failure pinned to the offending token's source position.
// The parser aborts on the first Error it produces; there is no recovery and
// no partial AST.
type Error struct {
	Msg  string
	Line int
	Col  int
}

// Error formats the failure as "line L col C: msg".
func (e *Error) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
}

// Unwrap makes every positioned Error match ErrParse.
func (e *Error) Unwrap() error { return ErrParse }
