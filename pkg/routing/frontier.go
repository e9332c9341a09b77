package routing

import (
	"fmt"
	"math"

	"github.com/rhartert/yagh"

	"map_query/pkg/minheap"
)

// Frontier selects the priority queue an Engine searches with.
type Frontier int

const (
	// FrontierLazy re-inserts a vertex on every improvement and skips
	// superseded entries when they surface.
	FrontierLazy Frontier = iota
	// FrontierIndexed keeps one entry per vertex and lowers its key in place.
	FrontierIndexed
)

func (f Frontier) String() string {
	switch f {
	case FrontierLazy:
		return "lazy"
	case FrontierIndexed:
		return "indexed"
	}
	return fmt.Sprintf("Frontier(%d)", int(f))
}

// ParseFrontier maps a config string to a Frontier. Empty selects FrontierLazy.
func ParseFrontier(s string) (Frontier, error) {
	switch s {
	case "", "lazy":
		return FrontierLazy, nil
	case "indexed":
		return FrontierIndexed, nil
	}
	return 0, fmt.Errorf("unknown frontier %q (want \"lazy\" or \"indexed\")", s)
}

type frontier interface {
	push(v uint32, dist float64)
	pop() (v uint32, dist float64, ok bool)
	len() int
	reset()
}

func newFrontier(kind Frontier, n uint32) frontier {
	if kind == FrontierIndexed {
		return &indexedFrontier{m: yagh.New[float64](int(n))}
	}
	return newLazyFrontier()
}

type pqItem struct {
	vertex uint32
	dist   float64
	seq    uint64 // insertion order; breaks distance ties FIFO
}

func lessItem(a, b pqItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.seq < b.seq
}

type lazyFrontier struct {
	h   *minheap.Heap[pqItem]
	seq uint64
}

func newLazyFrontier() *lazyFrontier {
	return &lazyFrontier{h: minheap.New(lessItem, 256)}
}

func (f *lazyFrontier) push(v uint32, dist float64) {
	f.seq++
	// pqItem is a value type, so Insert never reports ErrNilItem.
	_ = f.h.Insert(pqItem{vertex: v, dist: dist, seq: f.seq})
}

func (f *lazyFrontier) pop() (uint32, float64, bool) {
	it, err := f.h.ExtractMin()
	if err != nil {
		return NoVertex, math.Inf(1), false
	}
	return it.vertex, it.dist, true
}

func (f *lazyFrontier) len() int { return f.h.Size() }

func (f *lazyFrontier) reset() {
	f.h.Reset()
	f.seq = 0
}

// indexedFrontier wraps a yagh.IntMap, whose Put lowers an existing key.
type indexedFrontier struct {
	m *yagh.IntMap[float64]
}

func (f *indexedFrontier) push(v uint32, dist float64) {
	f.m.Put(int(v), dist)
}

func (f *indexedFrontier) pop() (uint32, float64, bool) {
	e, ok := f.m.Pop()
	if !ok {
		return NoVertex, math.Inf(1), false
	}
	return uint32(e.Elem), e.Cost, true
}

func (f *indexedFrontier) len() int { return f.m.Size() }

// reset drains with Pop. IntMap.Clear zeroes positions, which makes
// later Puts treat absent elements as present.
func (f *indexedFrontier) reset() {
	for f.m.Size() > 0 {
		f.m.Pop()
	}
}
