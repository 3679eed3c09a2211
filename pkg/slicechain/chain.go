package slicechain

import (
	"fmt"
	"strings"
)

// Chain is an ordered sequence of slice and index operations whose
// bounds have not yet been resolved against a target length. The zero
// value is the empty chain, which is the identity. Chains are value
// types: Append returns a new chain and never mutates shared state.
type Chain struct {
	ops []Op
}

// New builds a chain from ops. It fails with ErrZeroStep if any slice
// op carries an explicit zero step.
func New(ops ...Op) (Chain, error) {
	var c Chain
	for _, op := range ops {
		next, err := c.Append(op)
		if err != nil {
			return Chain{}, err
		}
		c = next
	}
	return c, nil
}

// ParseChain builds a chain by parsing each expression in order.
func ParseChain(exprs ...string) (Chain, error) {
	ops := make([]Op, 0, len(exprs))
	for _, e := range exprs {
		op, err := Parse(e)
		if err != nil {
			return Chain{}, err
		}
		ops = append(ops, op)
	}
	return New(ops...)
}

// Append returns a new chain with op composed after all existing
// operations. The new op is interpreted relative to the result of the
// prior ops, not the original sequence.
func (c Chain) Append(op Op) (Chain, error) {
	if err := op.validate(); err != nil {
		return Chain{}, fmt.Errorf("append %s: %w", op, err)
	}
	ops := make([]Op, len(c.ops), len(c.ops)+1)
	copy(ops, c.ops)
	return Chain{ops: append(ops, op)}, nil
}

// Ops returns a copy of the chain's operations in application order.
func (c Chain) Ops() []Op {
	out := make([]Op, len(c.ops))
	copy(out, c.ops)
	return out
}

// Len returns the number of operations in the chain.
func (c Chain) Len() int {
	return len(c.ops)
}

func (c Chain) String() string {
	if len(c.ops) == 0 {
		return "[:]"
	}
	var b strings.Builder
	for _, op := range c.ops {
		b.WriteString(op.String())
	}
	return b.String()
}
