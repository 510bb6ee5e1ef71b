package weft

import (
	"errors"
	"fmt"

	"github.com/weft-dev/weft/pkg/graph"
)

// ProgrammerError reports a violation of the runtime's structural contract.
// See graph.ProgrammerError; the type is re-exported here because most
// callers only import this package.
type ProgrammerError = graph.ProgrammerError

// ErrComponentNotFound is the cause carried by the panic raised when a
// context accessor is asked for a component the context does not hold.
var ErrComponentNotFound = errors.New("weft: component not found in context")

// ValidationError signals that a write was rejected, typically because a
// textual value failed to parse. Callers may display the message; the write
// simply does not happen.
type ValidationError struct {
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationf(err error, format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...), Err: err}
}
