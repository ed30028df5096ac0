package descriptor

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every ParseError
var ErrMalformed = errors.New("malformed type descriptor")

// ParseError indicates a return type string could not be parsed
type ParseError struct {
	Input    string
	Position int
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed type descriptor at position %d in '%s': %s", e.Position, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformed
}
