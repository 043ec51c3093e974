package domain

import (
	"errors"
	"fmt"
)

// Construction and document errors. All of them are terminal: a schedule
// that produces one of these never yields a Graph.
var (
	ErrSyntax             = errors.New("syntax error")
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrInvalidTimeFormat  = errors.New("invalid time format")
	ErrInvalidTimeOrder   = errors.New("start time must be before dest time")
	ErrAmbiguousAnchor    = errors.New("promotion needs exactly one of begin or end anchor")
	ErrRoutesBeforeHeader = errors.New("routes appearing before header")
	ErrMissingHeader      = errors.New("missing header line")
	ErrDuplicateHeader    = errors.New("duplicate header")
	ErrUnexpectedEntry    = errors.New("unexpected entry")

	ErrScheduleNotFound = errors.New("schedule not found")
	ErrUnknownLocation  = errors.New("unknown location")
)

// SyntaxError reports a schedule line that matches no grammar production.
type SyntaxError struct {
	Line int
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error on line %d: %q", e.Line, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
