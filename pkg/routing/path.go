package routing

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"map_query/pkg/graph"
)

// Path is a vertex sequence from source to destination, both inclusive.
type Path []uint32

// String renders the path as "0 -> 1 -> 2".
func (p Path) String() string {
	var sb strings.Builder
	for i, v := range p {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

// Weight sums the lightest edge between each consecutive pair. ok is false
// if some pair is not joined by an edge of g.
func (p Path) Weight(g *graph.Graph) (w float64, ok bool) {
	for i := 1; i < len(p); i++ {
		e, found := g.FindEdge(p[i-1], p[i])
		if !found {
			return 0, false
		}
		w += e.Weight
	}
	return w, true
}

// Reconstruct follows predecessors from dst back to src and returns the path
// in forward order. It reads the tables of the last Query, which must have
// been for the same src and dst. ErrNoPath is returned when dst was not
// reached. For src == dst the path is [src].
func (e *Engine) Reconstruct(src, dst uint32) (Path, error) {
	if !e.g.HasVertex(src) {
		return nil, e.invalid(src)
	}
	if !e.g.HasVertex(dst) {
		return nil, e.invalid(dst)
	}
	if src == dst {
		return Path{src}, nil
	}

	path := Path{dst}
	for v := dst; v != src; {
		p := e.qs.Pred[v]
		// A walk longer than the vertex count means the tables belong to
		// another query.
		if p == NoVertex || len(path) >= e.g.VertexCount() {
			return nil, fmt.Errorf("%w: %d to %d", ErrNoPath, src, dst)
		}
		path = append(path, p)
		v = p
	}
	slices.Reverse(path)
	return path, nil
}
