package graph

import "fmt"

// Edge is a directed adjacency record owned by its source vertex.
type Edge struct {
	Target uint32
	Weight float64
}

// Graph is a read-only weighted graph in CSR (Compressed Sparse Row) format.
// Vertex ids are dense indices 0..NumVertices-1. A Graph is never mutated
// after Builder.Build returns it, so it can be shared between goroutines.
type Graph struct {
	NumVertices uint32
	NumEdges    uint32   // directed records; an undirected edge counts twice
	FirstOut    []uint32 // len: NumVertices + 1; FirstOut[i]..FirstOut[i+1] are edges from vertex i
	Edges       []Edge   // len: NumEdges; per-vertex insertion order preserved
	X           []int64  // len: NumVertices
	Y           []int64  // len: NumVertices

	// Component[i] labels the weakly connected component of vertex i.
	// Vertices with different labels are never reachable from each other.
	Component []uint32
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return int(g.NumVertices)
}

// HasVertex reports whether id is a valid vertex index.
func (g *Graph) HasVertex(id uint32) bool {
	return id < g.NumVertices
}

// Vertex returns the coordinates of vertex id.
func (g *Graph) Vertex(id uint32) (x, y int64, err error) {
	if !g.HasVertex(id) {
		return 0, 0, fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, id, g.NumVertices)
	}
	return g.X[id], g.Y[id], nil
}

// EdgesFrom returns the range of edge indices for edges originating from vertex u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// EdgesOf returns the outgoing edges of vertex u in insertion order. The
// returned slice aliases the graph and must not be modified.
func (g *Graph) EdgesOf(u uint32) []Edge {
	start, end := g.EdgesFrom(u)
	return g.Edges[start:end:end]
}

// FindEdge returns the lightest edge u→v. ok is false if none exists.
func (g *Graph) FindEdge(u, v uint32) (e Edge, ok bool) {
	for _, cand := range g.EdgesOf(u) {
		if cand.Target == v && (!ok || cand.Weight < e.Weight) {
			e, ok = cand, true
		}
	}
	return e, ok
}

// Connected reports whether u and v lie in the same weakly connected component.
// A false result proves v is unreachable from u.
func (g *Graph) Connected(u, v uint32) bool {
	if g.Component == nil {
		return true
	}
	return g.Component[u] == g.Component[v]
}
