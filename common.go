// Package bounded provides capacity-bounded ordered containers: a
// double-ended priority deque and an eviction-aware ranked map. The ordering
// of each container is fixed at construction, either as a Less function or
// through a rank type implementing Comparer.
package bounded

import (
	"cmp"
	"errors"
)

// Less reports whether a is ordered before b. It must be a strict weak
// ordering: irreflexive and transitive, with incomparable values treated as
// equivalent.
type Less[T any] func(a, b T) bool

type Comparer[T any] interface {
	Before(T) bool
}

// Ascending orders naturally comparable values smallest first.
func Ascending[T cmp.Ordered](a, b T) bool {
	return a < b
}

// Descending orders naturally comparable values largest first.
func Descending[T cmp.Ordered](a, b T) bool {
	return b < a
}

var ErrNegativeCapacity = errors.New("bounded: negative capacity")

// Outcome reports how a capacity-bounded container handled an insertion.
type Outcome int

const (
	// Inserted means the element was stored without displacing anything.
	Inserted Outcome = iota
	// Replaced means the element was stored and the boundary element was
	// evicted to make room.
	Replaced
	// Rejected means the element was not competitive with the boundary
	// element of a full container; the container is unchanged.
	Rejected
)

// Admitted reports whether the element ended up stored.
func (o Outcome) Admitted() bool {
	return o != Rejected
}
