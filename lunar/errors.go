package lunar

import "fmt"

// ErrorKind classifies lexical failures so tooling can tell bad input
// apart from constructs the lexer does not handle.
type ErrorKind int

const (
	// ErrorMalformed marks input that can never be valid: an invalid
	// character, an unfinished string, a malformed number.
	ErrorMalformed ErrorKind = iota
	// ErrorUnsupported marks a recognized construct outside the supported
	// grammar, currently long-bracket strings and comments.
	ErrorUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorMalformed:
		return "malformed input"
	case ErrorUnsupported:
		return "unsupported construct"
	default:
		return "unknown"
	}
}

// Error is a fatal lexical error. The scan it aborted cannot be resumed.
type Error struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}
