package ranked

import (
	"github.com/ddirect/bounded"
)

// Item is an entry of a Map. Value may be mutated freely; the key and rank
// only change through the owning map.
type Item[K comparable, R bounded.Comparer[R], V any] struct {
	Value   V
	key     K
	rank    R
	indexP1 int // heap index plus 1 - zero when not in the map
}

func (it *Item[K, R, V]) Key() K {
	return it.key
}

func (it *Item[K, R, V]) Rank() R {
	return it.rank
}

func (it *Item[K, R, V]) Present() bool {
	return it != nil && it.indexP1 > 0
}

func (it *Item[K, R, V]) setNotPresent() {
	it.indexP1 = 0
}
