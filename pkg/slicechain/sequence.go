package slicechain

import "fmt"

// Sequence is the minimal collaborator contract a chain operates on:
// a length, selection by a resolved range, and element access by a
// non-negative index. Elements returned by Index may themselves be
// Sequences, which is how nested (multi-dimensional) data composes
// with scalar-index collapses.
type Sequence interface {
	Len() int
	Slice(r Range) Sequence
	Index(i int) any
}

// Of adapts a Go slice to the Sequence interface. Nesting works
// directly: the elements of Of[Of[T]] satisfy Sequence themselves.
type Of[T any] []T

// Len implements Sequence.
func (s Of[T]) Len() int {
	return len(s)
}

// Slice implements Sequence by materializing the indices r generates.
func (s Of[T]) Slice(r Range) Sequence {
	n := r.Len()
	out := make(Of[T], n)
	for i := 0; i < n; i++ {
		out[i] = s[r.At(i)]
	}
	return out
}

// Index implements Sequence.
func (s Of[T]) Index(i int) any {
	return s[i]
}

// Apply runs the chain against seq one operation at a time, resolving
// each op against the current value. It is observationally identical
// to Resolve(seq.Len()) followed by indexing. The result is a Sequence
// unless a scalar index collapsed the final dimension.
func (c Chain) Apply(seq Sequence) (any, error) {
	return applyOps(seq, c.ops)
}

func applyOps(seq Sequence, ops []Op) (any, error) {
	var cur any = seq
	for i, op := range ops {
		s, ok := cur.(Sequence)
		if !ok {
			return nil, fmt.Errorf("op %d %s: %w", i, op, ErrNotSequence)
		}
		switch op.Kind {
		case KindSlice:
			r, err := ResolveSlice(op.Slice, s.Len())
			if err != nil {
				return nil, fmt.Errorf("op %d %s: %w", i, op, err)
			}
			cur = s.Slice(r)
		case KindIndex:
			idx, err := resolveIndex(op.Index, s.Len())
			if err != nil {
				return nil, fmt.Errorf("op %d %s: %w", i, op, err)
			}
			cur = s.Index(idx)
		}
	}
	return cur, nil
}
