package morph

import (
	"errors"
	"github.com/viant/morph/conv"
)

// ConversionError represents a value that can not be coerced to a target type
type ConversionError = conv.Error

var (
	// ErrCycle is returned when a source value references itself
	ErrCycle = conv.ErrCycle
	// ErrMaxDepth is returned when nesting exceeds MaxDepth
	ErrMaxDepth = errors.New("maximum conversion depth exceeded")
	// ErrInvalidDestination is returned when destination is not a non nil pointer
	ErrInvalidDestination = errors.New("invalid destination")
)
