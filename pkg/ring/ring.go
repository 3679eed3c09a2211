// Package ring implements a fixed-capacity buffer with overwrite
// semantics: when full, new items displace the oldest ones, and a
// batch put larger than the capacity keeps only its tail.
package ring

import "fmt"

// Ring is a fixed-capacity FIFO over items of type T. The zero value
// is not usable; construct with New. Ring is not safe for concurrent
// use.
type Ring[T any] struct {
	buf   []T
	start int // position of the oldest item
	size  int
}

// New returns a ring holding at most capacity items.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be positive, got %d", capacity)
	}
	return &Ring[T]{buf: make([]T, capacity)}, nil
}

// Put appends items in order, moving the read head forward to make
// room when the ring is full. A batch of at least the full capacity
// resets the ring to the batch's trailing capacity items.
func (r *Ring[T]) Put(items ...T) {
	cap_ := len(r.buf)
	if len(items) >= cap_ {
		copy(r.buf, items[len(items)-cap_:])
		r.start = 0
		r.size = cap_
		return
	}
	for _, it := range items {
		if r.size < cap_ {
			r.buf[(r.start+r.size)%cap_] = it
			r.size++
			continue
		}
		r.buf[r.start] = it
		r.start = (r.start + 1) % cap_
	}
}

// Get returns a snapshot of the buffered items, oldest first.
func (r *Ring[T]) Get() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of buffered items.
func (r *Ring[T]) Len() int {
	return r.size
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Full reports whether the next Put will displace the oldest item.
func (r *Ring[T]) Full() bool {
	return r.size == len(r.buf)
}

// Resize replaces the buffer with one of the given capacity. Buffered
// data is dropped, matching the semantics of re-creating the ring.
func (r *Ring[T]) Resize(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("ring capacity must be positive, got %d", capacity)
	}
	r.buf = make([]T, capacity)
	r.start = 0
	r.size = 0
	return nil
}

func (r *Ring[T]) String() string {
	return fmt.Sprintf("Ring(%d/%d, full=%v)", r.size, len(r.buf), r.Full())
}
