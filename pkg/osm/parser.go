// Package osm extracts the drivable road network of an OpenStreetMap PBF
// extract and numbers its nodes as dense graph vertices.
package osm

import (
	"context"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"map_query/pkg/geo"
)

// Arc is a directed road segment between two vertices of a Network.
type Arc struct {
	From, To uint32
	Meters   float64
}

// Network is the routable part of an extract. Vertex i is the OSM node
// NodeIDs[i]; vertices are numbered in ascending node id order and only
// nodes touched by an Arc are kept.
type Network struct {
	NodeIDs []osm.NodeID
	X, Y    []int64 // geo.ToFixed(lon), geo.ToFixed(lat)
	Arcs    []Arc
	Stats   Stats
}

// Stats counts what Parse kept and dropped.
type Stats struct {
	Ways        int // drivable ways
	Segments    int // node pairs kept as one or two arcs
	Missing     int // segments with an endpoint lacking coordinates
	Repeated    int // segments joining a node to itself
	OutsideBBox int
}

// BBox is a geographic filter in degrees. The zero BBox keeps everything.
type BBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// IsZero reports whether the box is unset.
func (b BBox) IsZero() bool { return b == BBox{} }

func (b BBox) contains(p point) bool {
	lat, lng := p.latLng()
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ParseOptions configures Parse.
type ParseOptions struct {
	BBox BBox // segments with an endpoint outside are dropped
}

// point is a node position in fixed-point degrees, the OSM wire precision.
type point struct{ x, y int64 }

func (p point) latLng() (lat, lng float64) {
	return geo.FromFixed(p.y), geo.FromFixed(p.x)
}

func (p point) metersTo(q point) float64 {
	lat1, lng1 := p.latLng()
	lat2, lng2 := q.latLng()
	return geo.Haversine(lat1, lng1, lat2, lng2)
}

// way is a drivable way reduced to its node sequence and travel direction.
type way struct {
	nodes []osm.NodeID
	dir   direction
}

// Parse reads rs twice: once for ways, then, after seeking back, for the
// coordinates of the nodes those ways reference.
func Parse(ctx context.Context, rs io.ReadSeeker, opt ParseOptions) (*Network, error) {
	ways, wanted, err := scanWays(ctx, rs)
	if err != nil {
		return nil, fmt.Errorf("pass 1 (ways): %w", err)
	}
	log.Printf("Pass 1 complete: %d drivable ways, %d referenced nodes", len(ways), len(wanted))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for pass 2: %w", err)
	}
	coords, err := scanNodes(ctx, rs, wanted)
	if err != nil {
		return nil, fmt.Errorf("pass 2 (nodes): %w", err)
	}
	log.Printf("Pass 2 complete: %d of %d node coordinates found", len(coords), len(wanted))

	return assemble(ways, coords, opt.BBox), nil
}

func scanWays(ctx context.Context, r io.Reader) ([]way, map[osm.NodeID]struct{}, error) {
	sc := osmpbf.New(ctx, r, 1)
	defer sc.Close()
	sc.SkipNodes = true
	sc.SkipRelations = true

	var ways []way
	wanted := make(map[osm.NodeID]struct{})
	for sc.Scan() {
		w, ok := sc.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 || !drivable(w.Tags) {
			continue
		}
		dir := travel(w.Tags)
		if dir == 0 {
			continue
		}
		ids := w.Nodes.NodeIDs()
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
		ways = append(ways, way{nodes: ids, dir: dir})
	}
	return ways, wanted, sc.Err()
}

func scanNodes(ctx context.Context, r io.Reader, wanted map[osm.NodeID]struct{}) (map[osm.NodeID]point, error) {
	sc := osmpbf.New(ctx, r, 1)
	defer sc.Close()
	sc.SkipWays = true
	sc.SkipRelations = true

	coords := make(map[osm.NodeID]point, len(wanted))
	for sc.Scan() {
		n, ok := sc.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, ok := wanted[n.ID]; ok {
			coords[n.ID] = point{x: geo.ToFixed(n.Lon), y: geo.ToFixed(n.Lat)}
		}
	}
	return coords, sc.Err()
}

// assemble cuts ways into segments between consecutive nodes, numbers the
// surviving endpoints densely and emits one arc per permitted direction.
// Distinct nodes at the same position give a zero-metre arc.
func assemble(ways []way, coords map[osm.NodeID]point, box BBox) *Network {
	type segment struct {
		from, to osm.NodeID
		meters   float64
		dir      direction
	}

	st := Stats{Ways: len(ways)}
	var segs []segment
	for _, w := range ways {
		for i := 1; i < len(w.nodes); i++ {
			a, b := w.nodes[i-1], w.nodes[i]
			if a == b {
				st.Repeated++
				continue
			}
			pa, okA := coords[a]
			pb, okB := coords[b]
			if !okA || !okB {
				st.Missing++
				continue
			}
			if !box.IsZero() && (!box.contains(pa) || !box.contains(pb)) {
				st.OutsideBBox++
				continue
			}
			segs = append(segs, segment{from: a, to: b, meters: pa.metersTo(pb), dir: w.dir})
		}
	}
	st.Segments = len(segs)

	index := make(map[osm.NodeID]uint32)
	for _, s := range segs {
		index[s.from] = 0
		index[s.to] = 0
	}
	net := &Network{
		NodeIDs: slices.Sorted(maps.Keys(index)),
		Stats:   st,
	}
	net.X = make([]int64, len(net.NodeIDs))
	net.Y = make([]int64, len(net.NodeIDs))
	for i, id := range net.NodeIDs {
		index[id] = uint32(i)
		p := coords[id]
		net.X[i], net.Y[i] = p.x, p.y
	}

	for _, s := range segs {
		u, v := index[s.from], index[s.to]
		if s.dir&forward != 0 {
			net.Arcs = append(net.Arcs, Arc{From: u, To: v, Meters: s.meters})
		}
		if s.dir&backward != 0 {
			net.Arcs = append(net.Arcs, Arc{From: v, To: u, Meters: s.meters})
		}
	}
	return net
}
