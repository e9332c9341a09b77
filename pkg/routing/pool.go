package routing

import (
	"context"
	"fmt"

	"map_query/pkg/graph"
)

// Pool hands out Engines that share one read-only graph. An Engine is owned
// by a single caller between Acquire and Release.
type Pool struct {
	g       *graph.Graph
	engines chan *Engine
}

// NewPool creates size engines over g, each configured with opts.
func NewPool(g *graph.Graph, size int, opts ...Option) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	p := &Pool{
		g:       g,
		engines: make(chan *Engine, size),
	}
	for range size {
		p.engines <- NewEngine(g, opts...)
	}
	return p, nil
}

// Acquire blocks until an engine is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Engine, error) {
	select {
	case e := <-p.engines:
		return e, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns e to the pool. e must have come from Acquire on p.
func (p *Pool) Release(e *Engine) {
	p.engines <- e
}

// Size returns the number of engines owned by the pool.
func (p *Pool) Size() int { return cap(p.engines) }

// Graph returns the shared graph.
func (p *Pool) Graph() *graph.Graph { return p.g }
