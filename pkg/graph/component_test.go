package graph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)

	// Initially all separate.
	for i := range uint32(5) {
		if uf.Find(i) != i {
			t.Errorf("Find(%d) = %d, want %d", i, uf.Find(i), i)
		}
	}

	uf.Union(0, 1)
	if uf.Find(0) != uf.Find(1) {
		t.Error("0 and 1 should be in same set")
	}

	uf.Union(2, 3)
	if uf.Find(2) != uf.Find(3) {
		t.Error("2 and 3 should be in same set")
	}

	if uf.Find(0) == uf.Find(2) {
		t.Error("0 and 2 should be in different sets")
	}

	uf.Union(1, 3)
	if uf.Find(0) != uf.Find(3) {
		t.Error("0 and 3 should now be in same set")
	}
	if uf.Size(2) != 4 {
		t.Errorf("Size(2) = %d, want 4", uf.Size(2))
	}
	if uf.Union(0, 2) {
		t.Error("Union of joined sets should return false")
	}
}

func TestComponents(t *testing.T) {
	// Component 0: 0 - 1 - 2, component 1: 3 - 4, component 2: 5 alone.
	g := mustBuild(t, 6, []testEdge{
		{0, 1, 1},
		{1, 2, 1},
		{3, 4, 1},
	})

	want := []uint32{0, 0, 0, 1, 1, 2}
	if diff := cmp.Diff(want, g.Component); diff != "" {
		t.Errorf("Component mismatch (-want +got):\n%s", diff)
	}
	if n := NumComponents(g); n != 3 {
		t.Errorf("NumComponents = %d, want 3", n)
	}
	if g.Connected(0, 4) {
		t.Error("0 and 4 should not be connected")
	}
	if !g.Connected(2, 0) {
		t.Error("2 and 0 should be connected")
	}
}

func TestLargestComponent(t *testing.T) {
	// Component 1: 0 - 1 - 2 (3 vertices), component 2: 3 - 4 (2 vertices).
	g := mustBuild(t, 5, []testEdge{
		{0, 1, 100},
		{1, 2, 200},
		{3, 4, 300},
	})

	nodes := LargestComponent(g)
	if diff := cmp.Diff([]uint32{0, 1, 2}, nodes); diff != "" {
		t.Errorf("LargestComponent mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterToComponent(t *testing.T) {
	// Triangle 0-1-2 plus isolated pair 3-4.
	g := mustBuild(t, 5, []testEdge{
		{0, 1, 100},
		{1, 2, 200},
		{2, 0, 300},
		{3, 4, 400},
	})

	filtered, err := FilterToComponent(g, LargestComponent(g))
	if err != nil {
		t.Fatalf("FilterToComponent: %v", err)
	}

	if filtered.NumVertices != 3 {
		t.Fatalf("filtered NumVertices = %d, want 3", filtered.NumVertices)
	}
	if filtered.NumEdges != 6 {
		t.Fatalf("filtered NumEdges = %d, want 6", filtered.NumEdges)
	}
	checkCSR(t, filtered)

	// Total weight should only include the triangle, counted in both directions.
	var total float64
	for _, e := range filtered.Edges {
		total += e.Weight
	}
	if total != 1200 {
		t.Errorf("total weight = %v, want 1200", total)
	}
	if NumComponents(filtered) != 1 {
		t.Errorf("filtered graph has %d components, want 1", NumComponents(filtered))
	}
}

func TestFilterToComponentRenumbers(t *testing.T) {
	g := mustBuild(t, 4, []testEdge{{2, 3, 7}})

	filtered, err := FilterToComponent(g, []uint32{2, 3})
	if err != nil {
		t.Fatalf("FilterToComponent: %v", err)
	}
	x, _, _ := filtered.Vertex(0)
	if x != 2 {
		t.Errorf("new vertex 0 has x=%d, want 2 (old vertex 2)", x)
	}
	if e, ok := filtered.FindEdge(0, 1); !ok || e.Weight != 7 {
		t.Errorf("FindEdge(0, 1) = %+v, %v; want weight 7", e, ok)
	}
}

func TestFilterToComponentEmpty(t *testing.T) {
	g := &Graph{}
	if nodes := LargestComponent(g); nodes != nil {
		t.Errorf("expected nil for empty graph, got %v", nodes)
	}
	if _, err := FilterToComponent(g, nil); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("err = %v, want ErrEmptyGraph", err)
	}
}
