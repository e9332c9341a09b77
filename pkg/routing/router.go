package routing

import (
	"context"
	"fmt"

	"map_query/pkg/geo"
)

// Coord is a vertex position in graph coordinates.
type Coord struct {
	X int64
	Y int64
}

// LatLng represents a geographic coordinate.
type LatLng struct {
	Lat float64
	Lng float64
}

// LatLng reads c as fixed-point degrees (x = lon, y = lat), the layout
// produced by OSM ingestion.
func (c Coord) LatLng() LatLng {
	return LatLng{Lat: geo.FromFixed(c.Y), Lng: geo.FromFixed(c.X)}
}

// RouteResult is the output of a route query.
type RouteResult struct {
	Source      uint32
	Destination uint32
	Distance    float64
	Path        Path
	Coords      []Coord // one per Path vertex
	Settled     int
	Relaxed     int
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, src, dst uint32) (*RouteResult, error)
}

// PoolRouter implements Router by borrowing an Engine from a Pool per call.
type PoolRouter struct {
	pool *Pool
}

// NewRouter creates a Router backed by pool.
func NewRouter(pool *Pool) *PoolRouter {
	return &PoolRouter{pool: pool}
}

// Route computes the shortest path between two vertices. ctx bounds only the
// wait for a free engine; a started query always runs to completion.
func (r *PoolRouter) Route(ctx context.Context, src, dst uint32) (*RouteResult, error) {
	e, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire engine: %w", err)
	}
	defer r.pool.Release(e)

	res, err := e.Query(src, dst)
	if err != nil {
		return nil, err
	}
	if res.State != Found {
		return nil, fmt.Errorf("%w: %d to %d", ErrNoRoute, src, dst)
	}

	path, err := e.Reconstruct(src, dst)
	if err != nil {
		return nil, err
	}

	g := e.Graph()
	coords := make([]Coord, len(path))
	for i, v := range path {
		coords[i] = Coord{X: g.X[v], Y: g.Y[v]}
	}

	return &RouteResult{
		Source:      src,
		Destination: dst,
		Distance:    res.Distance,
		Path:        path,
		Coords:      coords,
		Settled:     res.Settled,
		Relaxed:     res.Relaxed,
	}, nil
}
