package slicechain

import (
	"errors"
	"fmt"
)

// ErrZeroStep is returned when a slice with step 0 is parsed, appended
// or resolved, whichever happens first.
var ErrZeroStep = errors.New("slice step cannot be zero")

// ErrIndexOutOfRange is returned when a scalar index falls outside the
// effective window it is resolved against. Out-of-range slice bounds
// clamp instead and never produce this error.
var ErrIndexOutOfRange = errors.New("scalar index out of range")

// ErrNotSequence is returned when a chain keeps operating past a
// collapse whose element is not itself a Sequence.
var ErrNotSequence = errors.New("cannot index into non-sequence value")

// ParseError reports input that does not match the slice grammar
// [start][:stop[:step]].
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid slice expression %q", e.Input)
}
