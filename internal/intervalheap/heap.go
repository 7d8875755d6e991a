// Package intervalheap implements a min-max (interval) heap on a flat slice.
// Elements are stored in pairs: the element at each even index is ordered at
// or before its odd partner, even slots form a min-heap across pairs and odd
// slots form a max-heap, and every pair bounds all pairs below it. The
// minimum therefore sits at index 0 and the maximum at index 1 (index 0 when
// a single element is stored).
package intervalheap

import (
	"iter"
	"slices"

	"github.com/ddirect/bounded"
)

type Heap[T any] struct {
	s        []T
	lessFunc bounded.Less[T]
	newIndex func(t T, i int)
}

// New creates an empty heap ordered by less. If newIndex is not nil it is
// called whenever an element is assigned a slot, allowing callers to track
// element positions for Remove and Fix.
func New[T any](less bounded.Less[T], newIndex func(t T, i int)) *Heap[T] {
	return &Heap[T]{
		lessFunc: less,
		newIndex: newIndex,
	}
}

func (h *Heap[T]) Len() int {
	return len(h.s)
}

func (h *Heap[T]) Get(i int) T {
	return h.s[i]
}

// Min returns the least element. It panics if the heap is empty.
func (h *Heap[T]) Min() T {
	return h.s[0]
}

// Max returns the greatest element. It panics if the heap is empty.
func (h *Heap[T]) Max() T {
	return h.s[h.maxIndex()]
}

func (h *Heap[T]) Grow(n int) {
	h.s = slices.Grow(h.s, n)
}

func (h *Heap[T]) Clear() {
	clear(h.s)
	h.s = h.s[:0]
}

// Values yields the elements in heap order. The sequence is invalidated by
// any mutation of the heap.
func (h *Heap[T]) Values() iter.Seq[T] {
	return slices.Values(h.s)
}

// PopAllMin yields the elements in ascending order, removing each one from
// the heap as it is produced.
func (h *Heap[T]) PopAllMin() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h.Len() > 0 {
			if !yield(h.PopMin()) {
				return
			}
		}
	}
}

func (h *Heap[T]) Push(x T) {
	h.s = append(h.s, x)
	n := h.Len() - 1
	if !h.up(n) && h.newIndex != nil {
		h.newIndex(x, n)
	}
}

func (h *Heap[T]) PopMin() T {
	n := h.Len() - 1
	h.swap(0, n)
	min := h.pop(n)
	if n > 0 {
		h.downMin(0, n)
	}
	return min
}

func (h *Heap[T]) PopMax() T {
	n := h.Len() - 1
	m := h.maxIndex()
	h.swap(m, n)
	max := h.pop(n)
	if m < n {
		h.downMax(m, n)
	}
	return max
}

func (h *Heap[T]) Remove(i int) T {
	n := h.Len() - 1
	if n != i {
		h.swap(i, n)
		h.fix(i, n)
	}
	return h.pop(n)
}

// Fix restores the invariants after the element at index i changed its
// ordering key.
func (h *Heap[T]) Fix(i int) {
	h.fix(i, h.Len())
}

// up restores the invariants for a freshly filled last slot j and reports
// whether the element moved.
func (h *Heap[T]) up(j int) bool {
	if j == 0 {
		return false
	}
	if j&1 == 1 {
		// the slot completes a pair
		if h.less(j, j-1) {
			h.swap(j, j-1)
			h.upMin(j - 1)
			return true
		}
		return h.upMax(j)
	}
	// a lone element opens a new pair; order it against the parent pair
	p := parent(j)
	if h.less(j, p) {
		h.swap(j, p)
		h.upMin(p)
		return true
	}
	if h.less(p+1, j) {
		h.swap(j, p+1)
		h.upMax(p + 1)
		return true
	}
	return false
}

// fix re-establishes the invariants around slot i after its element was
// replaced. n is the live length.
func (h *Heap[T]) fix(i, n int) {
	lo := i &^ 1
	hi := lo + 1
	if hi >= n {
		// i is the lone last element; only the parent pair can be violated
		if lo == 0 {
			return
		}
		p := parent(lo)
		if h.less(lo, p) {
			h.swap(lo, p)
			h.upMin(p)
		} else if h.less(p+1, lo) {
			h.swap(lo, p+1)
			h.upMax(p + 1)
		}
		return
	}
	if h.less(hi, lo) {
		h.swap(lo, hi)
	}
	if !h.upMin(lo) {
		h.downMin(lo, n)
	}
	if !h.upMax(hi) {
		h.downMax(hi, n)
	}
}

func (h *Heap[T]) upMin(j0 int) bool {
	j := j0
	for j >= 2 {
		i := parent(j)
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
	return j < j0
}

func (h *Heap[T]) upMax(j0 int) bool {
	j := j0
	for j >= 3 {
		i := parent(j) + 1
		if !h.less(i, j) {
			break
		}
		h.swap(i, j)
		j = i
	}
	return j < j0
}

// downMin sinks the element at even slot i0 along the min side. Whenever the
// sunk element lands above its new partner it is exchanged into the max side
// of that pair, which keeps both invariants intact.
func (h *Heap[T]) downMin(i0, n int) bool {
	i := i0
	for {
		c := 2*i + 2 // min slot of the left child pair
		if c >= n {
			break
		}
		if c2 := c + 2; c2 < n && h.less(c2, c) {
			c = c2
		}
		if !h.less(c, i) {
			break
		}
		h.swap(i, c)
		i = c
		if c+1 < n && h.less(c+1, c) {
			h.swap(c, c+1)
		}
	}
	return i > i0
}

// downMax is the mirror of downMin for odd slots. A lone last element has no
// max partner and stands in for it.
func (h *Heap[T]) downMax(i0, n int) bool {
	i := i0
	for {
		c := 2*i + 1 // max slot of the left child pair
		if c-1 >= n {
			break
		}
		if c >= n {
			c--
		}
		if c2 := 2*i + 3; c2-1 < n {
			if c2 >= n {
				c2--
			}
			if h.less(c, c2) {
				c = c2
			}
		}
		if !h.less(i, c) {
			break
		}
		h.swap(i, c)
		i = c
		if i&1 == 1 && h.less(i, i-1) {
			h.swap(i, i-1)
		}
	}
	return i > i0
}

func (h *Heap[T]) maxIndex() int {
	if h.Len() > 1 {
		return 1
	}
	return 0
}

// parent returns the min slot of the parent pair of the pair containing slot j.
func parent(j int) int {
	return (j/2 - 1) / 2 * 2
}

func (h *Heap[T]) swap(i, j int) {
	a, b := h.s[i], h.s[j]
	h.s[j], h.s[i] = a, b
	if h.newIndex != nil {
		h.newIndex(a, j)
		h.newIndex(b, i)
	}
}

func (h *Heap[T]) pop(n int) T {
	e := h.s[n]
	var zero T
	h.s[n] = zero
	h.s = h.s[:n]
	return e
}

func (h *Heap[T]) less(i, j int) bool {
	return h.lessFunc(h.s[i], h.s[j])
}
