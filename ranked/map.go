// Package ranked implements a capacity-bounded map whose entries carry a
// rank. The map keeps O(1) access to both the best- and the worst-ranked
// entry, and once full it admits a new key only by evicting the worst-ranked
// one, making it a building block for eviction-aware caches. Not safe for
// concurrent use.
package ranked

import (
	"iter"

	"github.com/ddirect/bounded"
	"github.com/ddirect/bounded/internal/intervalheap"
)

type Map[K comparable, R bounded.Comparer[R], V any] struct {
	h        *intervalheap.Heap[*Item[K, R, V]]
	m        map[K]*Item[K, R, V]
	capacity int
}

// New creates an empty map holding at most capacity entries. A negative
// capacity returns bounded.ErrNegativeCapacity.
func New[K comparable, R bounded.Comparer[R], V any](capacity int) (*Map[K, R, V], error) {
	if capacity < 0 {
		return nil, bounded.ErrNegativeCapacity
	}
	m := &Map[K, R, V]{
		m:        make(map[K]*Item[K, R, V], capacity),
		capacity: capacity,
	}
	m.h = intervalheap.New(
		func(a, b *Item[K, R, V]) bool {
			return a.rank.Before(b.rank)
		},
		func(it *Item[K, R, V], i int) {
			it.indexP1 = i + 1
		})
	m.h.Grow(capacity)
	return m, nil
}

func (m *Map[K, R, V]) Len() int {
	return m.h.Len()
}

func (m *Map[K, R, V]) Cap() int {
	return m.capacity
}

func (m *Map[K, R, V]) Full() bool {
	return m.h.Len() == m.capacity
}

func (m *Map[K, R, V]) Clear() {
	for it := range m.h.Values() {
		it.setNotPresent()
	}
	m.h.Clear()
	clear(m.m)
}

// Set stores value under key with the given rank. An existing key is updated
// in place and the outcome is bounded.Inserted. A new key on a full map is
// admitted only if rank is better than the worst retained rank, in which
// case the worst entry is evicted and returned; otherwise nothing changes
// and the outcome is bounded.Rejected.
func (m *Map[K, R, V]) Set(key K, rank R, value V) (evicted *Item[K, R, V], outcome bounded.Outcome) {
	if item, found := m.m[key]; found {
		item.rank = rank
		item.Value = value
		m.h.Fix(item.indexP1 - 1)
		return nil, bounded.Inserted
	}
	outcome = bounded.Inserted
	if m.h.Len() == m.capacity {
		if m.capacity == 0 {
			return nil, bounded.Rejected
		}
		worst := m.h.Max()
		if !rank.Before(worst.rank) {
			return nil, bounded.Rejected
		}
		m.deleteItem(worst)
		evicted = worst
		outcome = bounded.Replaced
	}
	item := &Item[K, R, V]{
		Value: value,
		key:   key,
		rank:  rank,
	}
	m.h.Push(item)
	m.m[key] = item
	return evicted, outcome
}

// Get returns the item stored under key, or nil.
func (m *Map[K, R, V]) Get(key K) *Item[K, R, V] {
	return m.m[key]
}

func (m *Map[K, R, V]) Exists(key K) bool {
	_, ok := m.m[key]
	return ok
}

// Best returns the best-ranked item, or nil when the map is empty.
func (m *Map[K, R, V]) Best() *Item[K, R, V] {
	if m.h.Len() == 0 {
		return nil
	}
	return m.h.Min()
}

// Worst returns the worst-ranked item - the eviction candidate - or nil when
// the map is empty.
func (m *Map[K, R, V]) Worst() *Item[K, R, V] {
	if m.h.Len() == 0 {
		return nil
	}
	return m.h.Max()
}

// SetRank changes the rank of an existing entry. It reports whether key was
// present.
func (m *Map[K, R, V]) SetRank(key K, rank R) bool {
	item, found := m.m[key]
	if !found {
		return false
	}
	item.rank = rank
	m.h.Fix(item.indexP1 - 1)
	return true
}

func (m *Map[K, R, V]) Delete(key K) bool {
	if item, found := m.m[key]; found {
		m.deleteItem(item)
		return true
	}
	return false
}

// DeleteWorst removes and returns the worst-ranked item, or nil when the map
// is empty.
func (m *Map[K, R, V]) DeleteWorst() *Item[K, R, V] {
	item := m.Worst()
	if item != nil {
		m.deleteItem(item)
	}
	return item
}

// RemoveOrdered yields the items best rank first, removing each one from the
// map as it is produced.
func (m *Map[K, R, V]) RemoveOrdered() iter.Seq[*Item[K, R, V]] {
	return func(yield func(*Item[K, R, V]) bool) {
		for m.Len() > 0 {
			item := m.h.Min()
			if !yield(item) {
				return
			}
			m.deleteItem(item)
		}
	}
}

func (m *Map[K, R, V]) deleteItem(item *Item[K, R, V]) {
	m.h.Remove(item.indexP1 - 1)
	delete(m.m, item.key)
	item.setNotPresent()
}
