package osm

import (
	"fmt"

	"map_query/pkg/graph"
)

// ToGraph freezes net into a Graph with the same vertex numbering. Arcs keep
// their direction and carry metres as weight.
func ToGraph(net *Network) (*graph.Graph, error) {
	if len(net.NodeIDs) == 0 {
		return nil, fmt.Errorf("no routable segments: %w", graph.ErrEmptyGraph)
	}

	b, err := graph.NewBuilder(uint32(len(net.NodeIDs)))
	if err != nil {
		return nil, err
	}
	for i := range net.NodeIDs {
		if err := b.SetVertex(uint32(i), net.X[i], net.Y[i]); err != nil {
			return nil, err
		}
	}

	b.Grow(len(net.Arcs))
	for _, a := range net.Arcs {
		if err := b.AddArc(a.From, a.To, a.Meters); err != nil {
			return nil, fmt.Errorf("node %d->%d: %w", net.NodeIDs[a.From], net.NodeIDs[a.To], err)
		}
	}
	return b.Build()
}
