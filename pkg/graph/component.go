package graph

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte // max rank stays near 30 for road graphs
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := range n {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 {
	return uf.size[uf.Find(x)]
}

func unionEdges(g *Graph) *UnionFind {
	uf := NewUnionFind(g.NumVertices)
	for u := uint32(0); u < g.NumVertices; u++ {
		for _, e := range g.EdgesOf(u) {
			uf.Union(u, e.Target)
		}
	}
	return uf
}

// Components labels every vertex with a dense component id (0, 1, ...)
// in order of each component's lowest vertex. Edge direction is ignored.
func Components(g *Graph) []uint32 {
	if g.NumVertices == 0 {
		return nil
	}
	uf := unionEdges(g)

	const unlabeled = ^uint32(0)
	rootLabel := make([]uint32, g.NumVertices)
	for i := range rootLabel {
		rootLabel[i] = unlabeled
	}

	labels := make([]uint32, g.NumVertices)
	next := uint32(0)
	for i := uint32(0); i < g.NumVertices; i++ {
		root := uf.Find(i)
		if rootLabel[root] == unlabeled {
			rootLabel[root] = next
			next++
		}
		labels[i] = rootLabel[root]
	}
	return labels
}

// NumComponents returns the number of distinct component labels in g.
func NumComponents(g *Graph) int {
	n := 0
	for _, c := range g.Component {
		if int(c) >= n {
			n = int(c) + 1
		}
	}
	return n
}

// LargestComponent returns the vertex ids belonging to the largest weakly
// connected component, in ascending order.
func LargestComponent(g *Graph) []uint32 {
	if g.NumVertices == 0 {
		return nil
	}

	uf := unionEdges(g)

	bestRoot := uint32(0)
	bestSize := uint32(0)
	for i := uint32(0); i < g.NumVertices; i++ {
		root := uf.Find(i)
		if uf.size[root] > bestSize {
			bestRoot = root
			bestSize = uf.size[root]
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for i := uint32(0); i < g.NumVertices; i++ {
		if uf.Find(i) == bestRoot {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

// FilterToComponent creates a new graph containing only the given vertices,
// renumbered densely in the order given. Edges leaving the set are dropped.
func FilterToComponent(g *Graph, nodes []uint32) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	const absent = ^uint32(0)
	oldToNew := make([]uint32, g.NumVertices)
	for i := range oldToNew {
		oldToNew[i] = absent
	}
	for newIdx, oldIdx := range nodes {
		oldToNew[oldIdx] = uint32(newIdx)
	}

	b, err := NewBuilder(uint32(len(nodes)))
	if err != nil {
		return nil, err
	}
	for newIdx, oldIdx := range nodes {
		if err := b.SetVertex(uint32(newIdx), g.X[oldIdx], g.Y[oldIdx]); err != nil {
			return nil, err
		}
	}
	for _, oldU := range nodes {
		for _, e := range g.EdgesOf(oldU) {
			newV := oldToNew[e.Target]
			if newV == absent {
				continue
			}
			if err := b.AddArc(oldToNew[oldU], newV, e.Weight); err != nil {
				return nil, err
			}
		}
	}
	return b.Build()
}
