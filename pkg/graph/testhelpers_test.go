package graph

import "testing"

type testEdge struct {
	u, v uint32
	w    float64
}

// mustBuild builds an undirected graph with vertex i placed at (i, 0).
func mustBuild(t *testing.T, n uint32, edges []testEdge) *Graph {
	t.Helper()
	b, err := NewBuilder(n)
	if err != nil {
		t.Fatalf("NewBuilder(%d): %v", n, err)
	}
	for i := range n {
		if err := b.SetVertex(i, int64(i), 0); err != nil {
			t.Fatalf("SetVertex(%d): %v", i, err)
		}
	}
	for _, e := range edges {
		if err := b.AddEdge(e.u, e.v, e.w); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e.u, e.v, err)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func checkCSR(t *testing.T, g *Graph) {
	t.Helper()
	for i := uint32(1); i <= g.NumVertices; i++ {
		if g.FirstOut[i] < g.FirstOut[i-1] {
			t.Errorf("FirstOut[%d]=%d < FirstOut[%d]=%d - not monotonic", i, g.FirstOut[i], i-1, g.FirstOut[i-1])
		}
	}
	if g.FirstOut[g.NumVertices] != g.NumEdges {
		t.Errorf("FirstOut[%d]=%d != NumEdges=%d", g.NumVertices, g.FirstOut[g.NumVertices], g.NumEdges)
	}
	for i, e := range g.Edges {
		if e.Target >= g.NumVertices {
			t.Errorf("Edges[%d].Target=%d >= NumVertices=%d", i, e.Target, g.NumVertices)
		}
	}
}
