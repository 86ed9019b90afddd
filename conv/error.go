package conv

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when a value graph references itself
var ErrCycle = errors.New("cyclic value graph")

// Error represents a value that can not be interpreted as a target kind
type Error struct {
	Value  interface{}
	Target string
	Reason string
}

func (e *Error) Error() string {
	message := fmt.Sprintf("cannot convert %v (%T) to %s", e.Value, e.Value, e.Target)
	if e.Reason != "" {
		message += ": " + e.Reason
	}
	return message
}

// NewError creates a conversion error
func NewError(value interface{}, target string, reason string) *Error {
	return &Error{Value: value, Target: target, Reason: reason}
}
