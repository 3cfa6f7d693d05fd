package cmdargs

import (
	"fmt"
	"strings"
)

// UsageError reports that a command was called with too few arguments. It is
// not a failure; the console prints it as help text.
type UsageError struct {
	Syntax string
	Hints  []string
}

func (e *UsageError) Error() string {
	if len(e.Hints) == 0 {
		return e.Syntax
	}

	return e.Syntax + "\n" + strings.Join(e.Hints, "\n")
}

// ValidationError reports an argument that failed numeral parsing or a range
// check.
type ValidationError struct {
	Field  string
	Token  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("incorrect %s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("incorrect %s %q: %s", e.Field, e.Token, e.Reason)
}

// OutOfRange builds a ValidationError for a value outside [low, high].
func OutOfRange(field string, value, low, high uint64) *ValidationError {
	return &ValidationError{
		Field:  field,
		Token:  fmt.Sprint(value),
		Reason: fmt.Sprintf("must be within [%d, %d]", low, high),
	}
}
