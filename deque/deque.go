// Package deque implements a bounded double-ended priority container: it
// holds at most a fixed number of elements and gives O(1) access to both the
// least and the greatest element under a caller-supplied ordering, with
// O(log n) insertion and removal at either end.
//
// A full deque admits a new element only when it is competitive with the
// boundary element chosen by the retention bias. Under the default
// RetainLeast bias the deque keeps the capacity least elements seen so far:
// an element ordered before the current maximum evicts it, anything else is
// rejected. This is the classic streaming top-K retention.
//
// The deque is not safe for concurrent use. Sequences returned by Values and
// Drain are invalidated by any mutating call issued during traversal.
package deque

import (
	"cmp"
	"iter"

	"github.com/ddirect/bounded"
	"github.com/ddirect/bounded/internal/intervalheap"
)

// Bias selects which end of the ordering a full deque retains.
type Bias int

const (
	// RetainLeast keeps the least elements; admission evicts the current
	// maximum.
	RetainLeast Bias = iota
	// RetainGreatest keeps the greatest elements; admission evicts the
	// current minimum.
	RetainGreatest
)

type Deque[T any] struct {
	h        *intervalheap.Heap[T]
	lessFunc bounded.Less[T]
	capacity int
	bias     Bias
}

// New creates an empty deque holding at most capacity elements ordered by
// less, retaining the least elements once full. Capacity 0 is valid and
// yields a permanently empty deque. A negative capacity returns
// bounded.ErrNegativeCapacity.
func New[T any](capacity int, less bounded.Less[T]) (*Deque[T], error) {
	return NewBiased(capacity, less, RetainLeast)
}

// NewBiased is New with an explicit retention bias.
func NewBiased[T any](capacity int, less bounded.Less[T], bias Bias) (*Deque[T], error) {
	if capacity < 0 {
		return nil, bounded.ErrNegativeCapacity
	}
	d := &Deque[T]{
		h:        intervalheap.New(less, nil),
		lessFunc: less,
		capacity: capacity,
		bias:     bias,
	}
	d.h.Grow(capacity)
	return d, nil
}

// NewMin creates a naturally ordered deque retaining the capacity smallest
// elements seen.
func NewMin[T cmp.Ordered](capacity int) (*Deque[T], error) {
	return New(capacity, bounded.Ascending[T])
}

// NewMax creates a naturally ordered deque retaining the capacity largest
// elements seen.
func NewMax[T cmp.Ordered](capacity int) (*Deque[T], error) {
	return NewBiased(capacity, bounded.Ascending[T], RetainGreatest)
}

// Push offers v to the deque. Below capacity it is always stored. At
// capacity the admission policy decides: if v is competitive with the
// boundary element, that element is evicted and returned with
// bounded.Replaced; otherwise the deque is unchanged and the outcome is
// bounded.Rejected. An element equivalent to the boundary is not
// competitive.
func (d *Deque[T]) Push(v T) (evicted T, outcome bounded.Outcome) {
	if d.h.Len() < d.capacity {
		d.h.Push(v)
		return evicted, bounded.Inserted
	}
	if d.capacity == 0 {
		return evicted, bounded.Rejected
	}
	if d.bias == RetainLeast {
		if !d.lessFunc(v, d.h.Max()) {
			return evicted, bounded.Rejected
		}
		evicted = d.h.PopMax()
	} else {
		if !d.lessFunc(d.h.Min(), v) {
			return evicted, bounded.Rejected
		}
		evicted = d.h.PopMin()
	}
	d.h.Push(v)
	return evicted, bounded.Replaced
}

// PeekMin returns the least element without removing it. ok is false when
// the deque is empty.
func (d *Deque[T]) PeekMin() (v T, ok bool) {
	if d.h.Len() == 0 {
		return
	}
	return d.h.Min(), true
}

// PeekMax returns the greatest element without removing it. ok is false when
// the deque is empty.
func (d *Deque[T]) PeekMax() (v T, ok bool) {
	if d.h.Len() == 0 {
		return
	}
	return d.h.Max(), true
}

// PopMin removes and returns the least element. ok is false when the deque
// is empty.
func (d *Deque[T]) PopMin() (v T, ok bool) {
	if d.h.Len() == 0 {
		return
	}
	return d.h.PopMin(), true
}

// PopMax removes and returns the greatest element. ok is false when the
// deque is empty.
func (d *Deque[T]) PopMax() (v T, ok bool) {
	if d.h.Len() == 0 {
		return
	}
	return d.h.PopMax(), true
}

func (d *Deque[T]) Len() int {
	return d.h.Len()
}

func (d *Deque[T]) Cap() int {
	return d.capacity
}

func (d *Deque[T]) Empty() bool {
	return d.h.Len() == 0
}

func (d *Deque[T]) Full() bool {
	return d.h.Len() == d.capacity
}

func (d *Deque[T]) Clear() {
	d.h.Clear()
}

// Values yields the elements in internal heap order, not sorted order.
func (d *Deque[T]) Values() iter.Seq[T] {
	return d.h.Values()
}

// Drain yields the elements in ascending order, removing each one as it is
// produced. Stopping early leaves the remaining elements in place.
func (d *Deque[T]) Drain() iter.Seq[T] {
	return d.h.PopAllMin()
}

// Merge offers every element of other to d through d's admission policy.
// other is left untouched. The two deques may differ in capacity and bias
// but must agree on the ordering for the result to be meaningful.
func (d *Deque[T]) Merge(other *Deque[T]) {
	for v := range other.Values() {
		d.Push(v)
	}
}
