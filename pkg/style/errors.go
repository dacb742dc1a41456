package style

import "errors"

var (
	// ErrSyntax is wrapped by errors for text that cannot be tokenized or parsed.
	ErrSyntax = errors.New("syntax error")

	// ErrDirective is wrapped by errors for well-formed statements that are
	// not valid style directives.
	ErrDirective = errors.New("invalid directive")
)

// ParseError reports a problem at a specific position in a style file.
type ParseError struct {
	Pos Pos
	Msg string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Unwrap returns the sentinel the error wraps.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func syntaxError(pos Pos, msg string) *ParseError {
	return &ParseError{Pos: pos, Msg: msg, Err: ErrSyntax}
}

func directiveError(pos Pos, msg string) *ParseError {
	return &ParseError{Pos: pos, Msg: msg, Err: ErrDirective}
}
