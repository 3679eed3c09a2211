package ring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPutGetInOrder(t *testing.T) {
	r, err := New[int](5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Put(1, 2, 3)
	if diff := cmp.Diff([]int{1, 2, 3}, r.Get()); diff != "" {
		t.Fatalf("Get (-want +got):\n%s", diff)
	}
	if r.Len() != 3 || r.Full() {
		t.Fatalf("Len=%d Full=%v", r.Len(), r.Full())
	}
}

func TestPutWrapsAndDisplacesOldest(t *testing.T) {
	r, err := New[int](3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Put(1, 2, 3)
	if !r.Full() {
		t.Fatal("ring should be full")
	}
	r.Put(4)
	if diff := cmp.Diff([]int{2, 3, 4}, r.Get()); diff != "" {
		t.Fatalf("after wrap (-want +got):\n%s", diff)
	}
	r.Put(5, 6)
	if diff := cmp.Diff([]int{4, 5, 6}, r.Get()); diff != "" {
		t.Fatalf("after second wrap (-want +got):\n%s", diff)
	}
}

func TestOversizePutKeepsTail(t *testing.T) {
	r, err := New[int](3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Put(9)
	r.Put(1, 2, 3, 4, 5)
	if diff := cmp.Diff([]int{3, 4, 5}, r.Get()); diff != "" {
		t.Fatalf("oversize put (-want +got):\n%s", diff)
	}
	if !r.Full() {
		t.Fatal("ring should be full after oversize put")
	}
}

func TestPartialOverflow(t *testing.T) {
	r, err := New[int](4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Put(1, 2, 3)
	r.Put(4, 5, 6) // overflows by two
	if diff := cmp.Diff([]int{3, 4, 5, 6}, r.Get()); diff != "" {
		t.Fatalf("partial overflow (-want +got):\n%s", diff)
	}
}

func TestResizeDropsData(t *testing.T) {
	r, err := New[string](2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Put("a", "b")
	if err := r.Resize(4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if r.Len() != 0 || r.Cap() != 4 {
		t.Fatalf("after resize: Len=%d Cap=%d", r.Len(), r.Cap())
	}
	r.Put("c")
	if diff := cmp.Diff([]string{"c"}, r.Get()); diff != "" {
		t.Fatalf("after resize put (-want +got):\n%s", diff)
	}
}

func TestInvalidCapacity(t *testing.T) {
	if _, err := New[int](0); err == nil {
		t.Fatal("New(0) should fail")
	}
	r, err := New[int](1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Resize(-1); err == nil {
		t.Fatal("Resize(-1) should fail")
	}
}
