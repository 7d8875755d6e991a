package intervalheap_test

import (
	"cmp"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"testing"

	"github.com/ddirect/bounded/internal/intervalheap"
	"github.com/stretchr/testify/assert"
)

func lessUint(a, b uint) bool {
	return a < b
}

// checkInvariants walks every pair and asserts intra-pair order and
// dominance over both child pairs on the min and the max side.
func checkInvariants[T any](t *testing.T, h *intervalheap.Heap[T], less func(a, b T) bool) {
	n := h.Len()
	for lo := 0; lo < n; lo += 2 {
		hi := lo + 1
		if hi < n {
			assert.False(t, less(h.Get(hi), h.Get(lo)), "pair order at %d", lo)
		}
		for _, cLo := range []int{2*lo + 2, 2*lo + 4} {
			if cLo >= n {
				continue
			}
			assert.False(t, less(h.Get(cLo), h.Get(lo)), "min dominance %d over %d", lo, cLo)
			cHi := cLo + 1
			if cHi >= n {
				cHi = cLo
			}
			if hi < n {
				assert.False(t, less(h.Get(hi), h.Get(cHi)), "max dominance %d over %d", hi, cHi)
			}
		}
	}
}

func Test_Basic(t *testing.T) {
	const n = 1000

	h := intervalheap.New(lessUint, nil)

	var ref []uint
	for range n {
		v := rand.Uint()
		h.Push(v)
		ref = append(ref, v)
	}

	checkInvariants(t, h, lessUint)

	slices.Sort(ref)
	assert.Equal(t, ref, slices.Collect(h.PopAllMin()))
	assert.Equal(t, 0, h.Len())
}

func Test_Bounds(t *testing.T) {
	const n = 1000

	h := intervalheap.New(lessUint, nil)

	var ref []uint
	for range n {
		v := rand.Uint()
		h.Push(v)
		ref = append(ref, v)
		assert.Equal(t, slices.Min(ref), h.Min())
		assert.Equal(t, slices.Max(ref), h.Max())
	}
}

func Test_PopMax(t *testing.T) {
	const n = 1000

	h := intervalheap.New(lessUint, nil)

	var ref []uint
	for range n {
		v := rand.Uint()
		h.Push(v)
		ref = append(ref, v)
	}

	slices.SortFunc(ref, func(a, b uint) int {
		return cmp.Compare(b, a)
	})
	var got []uint
	for h.Len() > 0 {
		got = append(got, h.PopMax())
	}
	assert.Equal(t, ref, got)
}

func Test_BothEnds(t *testing.T) {
	h := intervalheap.New(lessUint, nil)

	for _, v := range []uint{5, 1, 4, 2, 3} {
		h.Push(v)
	}
	assert.Equal(t, uint(1), h.PopMin())
	assert.Equal(t, uint(5), h.PopMax())
	assert.Equal(t, uint(4), h.PopMax())
	assert.Equal(t, uint(2), h.PopMin())
	assert.Equal(t, uint(3), h.PopMin())
	assert.Equal(t, 0, h.Len())
}

func Test_SingleElement(t *testing.T) {
	h := intervalheap.New(lessUint, nil)
	h.Push(7)
	assert.Equal(t, uint(7), h.Min())
	assert.Equal(t, uint(7), h.Max())
	assert.Equal(t, uint(7), h.PopMax())
	assert.Equal(t, 0, h.Len())

	h.Push(9)
	assert.Equal(t, uint(9), h.PopMin())
	assert.Equal(t, 0, h.Len())
}

type LogFunc func(t *testing.T, data []byte)

func makeLogFunc(logFile string) LogFunc {
	if logFile == "" {
		return func(t *testing.T, data []byte) {
			t.Logf("%s\n", data)
		}
	}

	logout, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		panic(fmt.Errorf("open: %w", err))
	}

	return func(t *testing.T, data []byte) {
		if _, err := logout.Write(append(data, '\n')); err != nil {
			panic(fmt.Errorf("write: %w", err))
		}
	}
}

func makeCore(log LogFunc) func(t *testing.T, count, iterations int) {
	type node struct {
		val   uint
		index int
	}

	nodeLess := func(a, b *node) bool {
		return a.val < b.val
	}

	sortNodes := func(nodes []*node) {
		slices.SortFunc(nodes, func(a, b *node) int {
			return cmp.Compare(a.val, b.val)
		})
	}

	return func(t *testing.T, count, iterations int) {
		if count <= 0 || iterations <= 0 {
			return
		}

		// indexes of all items in heap
		var nodes []*node

		h := intervalheap.New(nodeLess, func(n *node, newIndex int) {
			n.index = newIndex
		})

		type stats struct {
			Count,
			Iterations,
			FinalLen, MaxLen, PushCount, FixCount, PopMinCount, PopMaxCount, RemoveCount int
		}

		s := &stats{
			Count:      count,
			Iterations: iterations,
		}

		push := func(count int) {
			for range count {
				n := &node{
					val: rand.Uint(),
				}
				h.Push(n)
				nodes = append(nodes, n)
				s.PushCount++
			}
			s.MaxLen = max(s.MaxLen, h.Len())
		}

		fix := func(count int) {
			if h.Len() < 2 {
				return
			}
			for range count {
				n := nodes[rand.IntN(len(nodes))]
				n.val = rand.Uint()
				h.Fix(n.index)
				s.FixCount++
			}
		}

		popMin := func(t *testing.T, count int) {
			sortNodes(nodes)
			for range count {
				if h.Len() == 0 {
					return
				}
				assert.Equal(t, nodes[0].val, h.PopMin().val)
				nodes = slices.Delete(nodes, 0, 1)
				s.PopMinCount++
			}
		}

		popMax := func(t *testing.T, count int) {
			sortNodes(nodes)
			for range count {
				if h.Len() == 0 {
					return
				}
				last := len(nodes) - 1
				assert.Equal(t, nodes[last].val, h.PopMax().val)
				nodes = slices.Delete(nodes, last, last+1)
				s.PopMaxCount++
			}
		}

		remove := func(t *testing.T, count int) {
			for range count {
				if h.Len() == 0 {
					return
				}
				i := rand.IntN(len(nodes))
				n := nodes[i]
				assert.Equal(t, n, h.Remove(n.index))
				nodes = slices.Delete(nodes, i, i+1)
				s.RemoveCount++
			}
		}

		for range iterations {
			switch rand.IntN(5) {
			case 0:
				push(rand.IntN(2 * count))
			case 1:
				fix(rand.IntN(count))
			case 2:
				popMin(t, rand.IntN(count))
			case 3:
				popMax(t, rand.IntN(count))
			case 4:
				remove(t, rand.IntN(count))
			}
			checkInvariants(t, h, nodeLess)
		}

		s.FinalLen = h.Len()

		sStr, _ := json.Marshal(s)
		log(t, sStr)

		sortNodes(nodes)

		s1 := make([]uint, 0, len(nodes))
		for _, n := range nodes {
			s1 = append(s1, n.val)
		}
		s2 := make([]uint, 0, h.Len())
		for n := range h.PopAllMin() {
			s2 = append(s2, n.val)
		}

		assert.Equal(t, s1, s2)
		assert.Equal(t, 0, h.Len())
	}
}

func Fuzz_Multi(f *testing.F) {
	f.Add(10, 1000)
	f.Add(100, 100)
	f.Fuzz(makeCore(makeLogFunc(logFile)))
}

func Test_Multi(t *testing.T) {
	makeCore(makeLogFunc(logFile))(t, 50, 200)
}

var logFile string

func init() {
	flag.StringVar(&logFile, "logfile", "", "logfile to use")
}
