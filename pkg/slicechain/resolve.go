package slicechain

import (
	"fmt"
	"strings"
)

// Range is a fully resolved (start, stop, step) over a concrete
// length. Stop is an exclusive bound in arithmetic terms: iteration
// runs start, start+step, ... while the index is on the near side of
// stop. For descending ranges stop may be negative, marking the step
// past index zero.
type Range struct {
	Start int
	Stop  int
	Step  int
}

// Len returns the number of indices the range generates.
func (r Range) Len() int {
	if r.Step > 0 {
		if r.Stop <= r.Start {
			return 0
		}
		return (r.Stop - r.Start + r.Step - 1) / r.Step
	}
	if r.Stop >= r.Start {
		return 0
	}
	return (r.Start - r.Stop - r.Step - 1) / -r.Step
}

// At returns the i-th index generated by the range. i must be within
// [0, Len()).
func (r Range) At(i int) int {
	return r.Start + i*r.Step
}

// Indices materializes every index the range generates, in order.
func (r Range) Indices() []int {
	n := r.Len()
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = r.At(i)
	}
	return out
}

// ToSlice converts the range back into an equivalent Slice. An empty
// range normalizes to [0:0]; a descending range that walks past index
// zero gets an open stop, since a negative stop would be reinterpreted
// as counted from the end.
func (r Range) ToSlice() Slice {
	if r.Len() == 0 {
		return Slice{Start: Int(0), Stop: Int(0), Step: Int(1)}
	}
	s := Slice{Start: Int(r.Start), Step: Int(r.Step)}
	if r.Stop >= 0 {
		s.Stop = Int(r.Stop)
	}
	return s
}

func (r Range) String() string {
	return fmt.Sprintf("(%d, %d, %d)", r.Start, r.Stop, r.Step)
}

// ResolveSlice resolves s against a sequence of length n: nil bounds
// take their directional defaults, negative bounds count from the end,
// and out-of-range bounds clamp to the valid window.
func ResolveSlice(s Slice, n int) (Range, error) {
	if err := s.validate(); err != nil {
		return Range{}, err
	}
	if n < 0 {
		return Range{}, fmt.Errorf("negative sequence length %d", n)
	}
	step := 1
	if s.Step != nil {
		step = *s.Step
	}
	// Directional clamp window, matching conventional slice semantics.
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	start := lower
	if step < 0 {
		start = upper
	}
	if s.Start != nil {
		start = *s.Start
		if start < 0 {
			start += n
		}
		if start < lower {
			start = lower
		} else if start > upper {
			start = upper
		}
	}
	stop := upper
	if step < 0 {
		stop = lower
	}
	if s.Stop != nil {
		stop = *s.Stop
		if stop < 0 {
			stop += n
		}
		if stop < lower {
			stop = lower
		} else if stop > upper {
			stop = upper
		}
	}
	return Range{Start: start, Stop: stop, Step: step}, nil
}

// resolveIndex resolves a scalar index against a window of length n.
func resolveIndex(i, n int) (int, error) {
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("index %d for length %d: %w", i, n, ErrIndexOutOfRange)
	}
	return idx, nil
}

// compose resolves s relative to the window and returns the window's
// sub-range, so that indexing the original sequence with the result
// equals indexing the window first and then the resolved s.
func compose(window Range, s Slice) (Range, error) {
	rs, err := ResolveSlice(s, window.Len())
	if err != nil {
		return Range{}, err
	}
	return Range{
		Start: window.Start + rs.Start*window.Step,
		Stop:  window.Start + rs.Stop*window.Step,
		Step:  window.Step * rs.Step,
	}, nil
}

// Bounded is a chain resolved against a known length. A chain made of
// slice ops only folds into a single flat Range; a chain containing
// scalar indices cannot, and instead reports its composed ops together
// with the positions of the dimension collapses.
type Bounded struct {
	n         int
	window    Range
	collapsed bool
	index     int  // first collapse, resolved relative to window
	tail      []Op // ops following the first collapse, still unresolved
	collapses []int
}

// Resolve walks the chain left to right against a sequence of length
// n. Each slice op is resolved against the current effective window
// and folded in; the first scalar index is resolved against the folded
// window and stops the fold, since the lengths of nested elements are
// unknown until application.
func (c Chain) Resolve(n int) (Bounded, error) {
	if n < 0 {
		return Bounded{}, fmt.Errorf("negative sequence length %d", n)
	}
	window := Range{Start: 0, Stop: n, Step: 1}
	i := 0
	for ; i < len(c.ops) && c.ops[i].Kind == KindSlice; i++ {
		next, err := compose(window, c.ops[i].Slice)
		if err != nil {
			return Bounded{}, fmt.Errorf("op %d %s: %w", i, c.ops[i], err)
		}
		window = next
	}
	if i == len(c.ops) {
		return Bounded{n: n, window: window}, nil
	}
	idx, err := resolveIndex(c.ops[i].Index, window.Len())
	if err != nil {
		return Bounded{}, fmt.Errorf("op %d %s: %w", i, c.ops[i], err)
	}
	tail := make([]Op, len(c.ops)-i-1)
	copy(tail, c.ops[i+1:])
	b := Bounded{
		n:         n,
		window:    window,
		collapsed: true,
		index:     idx,
		tail:      tail,
		collapses: []int{1},
	}
	for j, op := range tail {
		if err := op.validate(); err != nil {
			return Bounded{}, fmt.Errorf("op %d %s: %w", i+1+j, op, err)
		}
		if op.Kind == KindIndex {
			// Position within the composed op list returned by Ops.
			b.collapses = append(b.collapses, j+2)
		}
	}
	return b, nil
}

// Flat returns the single equivalent range when the chain contained
// slice ops only. ok is false when a scalar index collapsed a
// dimension and no flat range exists.
func (b Bounded) Flat() (Range, bool) {
	if b.collapsed {
		return Range{}, false
	}
	return b.window, true
}

// Ops returns the composed operation list: the folded window, then the
// resolved collapse index and the remaining unresolved ops, if any.
func (b Bounded) Ops() []Op {
	ops := []Op{SliceOp(b.window.ToSlice())}
	if !b.collapsed {
		return ops
	}
	ops = append(ops, IndexOp(b.index))
	return append(ops, b.tail...)
}

// Collapses returns the positions of dimension collapses within Ops.
// It is empty for chains that fold into a flat range.
func (b Bounded) Collapses() []int {
	out := make([]int, len(b.collapses))
	copy(out, b.collapses)
	return out
}

// Len returns the number of elements the folded window selects.
func (b Bounded) Len() int {
	return b.window.Len()
}

// Apply indexes seq with the resolved chain. For a flat chain this is
// a single range selection; past a collapse the remaining ops resolve
// against the nested elements as they surface.
func (b Bounded) Apply(seq Sequence) (any, error) {
	cur := seq.Slice(b.window)
	if !b.collapsed {
		return cur, nil
	}
	elem := cur.Index(b.index)
	if len(b.tail) == 0 {
		return elem, nil
	}
	next, ok := elem.(Sequence)
	if !ok {
		return nil, fmt.Errorf("after collapse at %d: %w", b.index, ErrNotSequence)
	}
	return applyOps(next, b.tail)
}

func (b Bounded) String() string {
	var parts []string
	for _, op := range b.Ops() {
		parts = append(parts, op.String())
	}
	return fmt.Sprintf("Bounded%s(%d -> %d)", strings.Join(parts, ""), b.n, b.Len())
}
