// Package slicechain composes ordered sequences of slice and index
// operations against sequences of unknown length. A Chain is built up
// incrementally without knowing the target length; Resolve folds it
// into concrete bounds once the length is known, and Apply runs it
// directly against any Sequence.
package slicechain

import (
	"fmt"
	"strconv"
	"strings"
)

// Slice is a (start, stop, step) triple. A nil field is unbounded in
// that direction until the slice is resolved against a length.
type Slice struct {
	Start *int
	Stop  *int
	Step  *int
}

// Int returns a pointer to v, for filling Slice fields inline.
func Int(v int) *int {
	return &v
}

// Full returns the slice with all bounds open, equivalent to "::".
func Full() Slice {
	return Slice{}
}

// NewSlice builds a Slice from optional bounds.
func NewSlice(start, stop, step *int) Slice {
	return Slice{Start: start, Stop: stop, Step: step}
}

// validate rejects an explicit zero step.
func (s Slice) validate() error {
	if s.Step != nil && *s.Step == 0 {
		return ErrZeroStep
	}
	return nil
}

// String renders the slice in conventional bracket notation. The step
// is omitted when absent or 1.
func (s Slice) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if s.Start != nil {
		b.WriteString(strconv.Itoa(*s.Start))
	}
	b.WriteByte(':')
	if s.Stop != nil {
		b.WriteString(strconv.Itoa(*s.Stop))
	}
	if s.Step != nil && *s.Step != 1 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*s.Step))
	}
	b.WriteByte(']')
	return b.String()
}

// OpKind discriminates the two chain element variants.
type OpKind int

const (
	// KindSlice selects a sub-range and preserves dimensionality.
	KindSlice OpKind = iota
	// KindIndex selects a single element and collapses a dimension.
	KindIndex
)

// Op is one element of a chain: either a slice or a scalar index.
type Op struct {
	Kind  OpKind
	Slice Slice
	Index int
}

// SliceOp wraps a Slice as a chain element.
func SliceOp(s Slice) Op {
	return Op{Kind: KindSlice, Slice: s}
}

// IndexOp wraps a scalar index as a chain element.
func IndexOp(i int) Op {
	return Op{Kind: KindIndex, Index: i}
}

func (o Op) validate() error {
	if o.Kind == KindSlice {
		return o.Slice.validate()
	}
	return nil
}

func (o Op) String() string {
	if o.Kind == KindIndex {
		return fmt.Sprintf("[%d]", o.Index)
	}
	return o.Slice.String()
}
