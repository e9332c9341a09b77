package graph

import (
	"fmt"
	"math"
)

// arc is a directed edge waiting for Build.
type arc struct {
	from, to uint32
	weight   float64
}

// Builder assembles a Graph. Vertices are assigned first, then edges are
// attached between already-assigned endpoints. A Builder is single-use.
type Builder struct {
	n        uint32
	assigned []bool
	x, y     []int64
	arcs     []arc
	built    bool
}

// initialSlots caps the up-front vertex allocation; slots beyond it are
// added as SetVertex reaches them.
const initialSlots = 1 << 16

// NewBuilder prepares a builder for n vertices. Slot storage grows with the
// highest assigned id, so a declared n costs nothing until vertices arrive.
func NewBuilder(n uint32) (*Builder, error) {
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	c := min(n, initialSlots)
	return &Builder{
		n:        n,
		assigned: make([]bool, 0, c),
		x:        make([]int64, 0, c),
		y:        make([]int64, 0, c),
	}, nil
}

// slot extends the vertex storage to cover id.
func (b *Builder) slot(id uint32) {
	if grow := int(id) + 1 - len(b.assigned); grow > 0 {
		b.assigned = append(b.assigned, make([]bool, grow)...)
		b.x = append(b.x, make([]int64, grow)...)
		b.y = append(b.y, make([]int64, grow)...)
	}
}

// Grow reserves room for k more directed records.
func (b *Builder) Grow(k int) {
	if k > 0 && cap(b.arcs)-len(b.arcs) < k {
		arcs := make([]arc, len(b.arcs), len(b.arcs)+k)
		copy(arcs, b.arcs)
		b.arcs = arcs
	}
}

// SetVertex assigns coordinates to vertex id. Each id is assigned once.
func (b *Builder) SetVertex(id uint32, x, y int64) error {
	if b.built {
		return ErrBuilt
	}
	if id >= b.n {
		return fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, id, b.n)
	}
	b.slot(id)
	if b.assigned[id] {
		return fmt.Errorf("%w: %d", ErrDuplicateVertex, id)
	}
	b.assigned[id] = true
	b.x[id] = x
	b.y[id] = y
	return nil
}

// Coords returns the coordinates of an assigned vertex.
func (b *Builder) Coords(id uint32) (x, y int64, err error) {
	if b.built {
		return 0, 0, ErrBuilt
	}
	if err := b.checkEndpoint(id); err != nil {
		return 0, 0, err
	}
	return b.x[id], b.y[id], nil
}

// AddEdge attaches an undirected edge as two directed records u→v and v→u.
func (b *Builder) AddEdge(u, v uint32, weight float64) error {
	if err := b.AddArc(u, v, weight); err != nil {
		return err
	}
	b.arcs = append(b.arcs, arc{from: v, to: u, weight: weight})
	return nil
}

// AddArc attaches a single directed record u→v.
func (b *Builder) AddArc(u, v uint32, weight float64) error {
	if b.built {
		return ErrBuilt
	}
	if err := b.checkEndpoint(u); err != nil {
		return err
	}
	if err := b.checkEndpoint(v); err != nil {
		return err
	}
	if u == v {
		return fmt.Errorf("%w: %d-%d", ErrSelfLoop, u, v)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %d-%d weight=%v", ErrNegativeWeight, u, v, weight)
	}
	b.arcs = append(b.arcs, arc{from: u, to: v, weight: weight})
	return nil
}

func (b *Builder) checkEndpoint(id uint32) error {
	if id >= b.n {
		return fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, id, b.n)
	}
	if int(id) >= len(b.assigned) || !b.assigned[id] {
		return fmt.Errorf("%w: %d", ErrVertexUnassigned, id)
	}
	return nil
}

// Build freezes the builder into a CSR Graph. Every vertex slot must have
// been assigned.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		return nil, ErrBuilt
	}
	for id, ok := range b.assigned {
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrVertexUnassigned, id)
		}
	}
	if uint32(len(b.assigned)) < b.n {
		return nil, fmt.Errorf("%w: %d", ErrVertexUnassigned, len(b.assigned))
	}
	if uint64(len(b.arcs)) > math.MaxUint32 {
		return nil, fmt.Errorf("edge count %d exceeds limit %d", len(b.arcs), uint32(math.MaxUint32))
	}
	b.built = true

	n := b.n
	numEdges := uint32(len(b.arcs))

	// Count edges per vertex, then prefix sum.
	firstOut := make([]uint32, n+1)
	for _, a := range b.arcs {
		firstOut[a.from+1]++
	}
	for i := uint32(1); i <= n; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Stable placement keeps each vertex's edges in insertion order.
	edges := make([]Edge, numEdges)
	pos := make([]uint32, n)
	copy(pos, firstOut[:n])
	for _, a := range b.arcs {
		edges[pos[a.from]] = Edge{Target: a.to, Weight: a.weight}
		pos[a.from]++
	}

	g := &Graph{
		NumVertices: n,
		NumEdges:    numEdges,
		FirstOut:    firstOut,
		Edges:       edges,
		X:           b.x,
		Y:           b.y,
	}
	g.Component = Components(g)

	b.arcs = nil
	b.assigned = nil
	return g, nil
}
