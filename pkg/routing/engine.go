package routing

import (
	"errors"
	"fmt"

	"map_query/pkg/graph"
)

// NoVertex is the predecessor sentinel for "no predecessor".
const NoVertex = ^uint32(0)

var (
	// ErrInvalidVertex is returned when a query names a vertex id outside the graph.
	ErrInvalidVertex = errors.New("invalid vertex")
	// ErrNoPath is returned by Reconstruct when the destination was not reached.
	ErrNoPath = errors.New("no path")
	// ErrNoRoute is returned by Route when the destination is unreachable.
	ErrNoRoute = errors.New("no route found")
)

// State is the lifecycle position of an Engine.
type State int

const (
	Idle State = iota
	Running
	Found
	Unreachable
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Found:
		return "found"
	case Unreachable:
		return "unreachable"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result summarises one query.
type Result struct {
	State       State
	Source      uint32
	Destination uint32
	Distance    float64 // +Inf when Unreachable
	Settled     int     // vertices popped with a final distance
	Relaxed     int     // successful edge relaxations
}

// Engine answers single-pair shortest-path queries over one graph. It owns
// its working state and is not safe for concurrent use; give each goroutine
// its own Engine (see Pool). The graph is shared read-only.
type Engine struct {
	g              *graph.Graph
	qs             *QueryState
	front          frontier
	kind           Frontier
	componentCheck bool
	state          State
}

// Option configures an Engine.
type Option func(*Engine)

// WithFrontier selects the priority queue strategy. The default is FrontierLazy.
func WithFrontier(f Frontier) Option {
	return func(e *Engine) { e.kind = f }
}

// WithComponentCheck toggles the connected-component shortcut. When enabled
// (the default), queries between different components end Unreachable
// without exploring.
func WithComponentCheck(on bool) Option {
	return func(e *Engine) { e.componentCheck = on }
}

// NewEngine allocates working state sized to g.
func NewEngine(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{
		g:              g,
		kind:           FrontierLazy,
		componentCheck: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.qs = NewQueryState(g.NumVertices)
	e.front = newFrontier(e.kind, g.NumVertices)
	return e
}

// Graph returns the graph the engine searches.
func (e *Engine) Graph() *graph.Graph { return e.g }

// State returns the state left by the last query, or Idle before the first.
func (e *Engine) State() State { return e.state }

// Frontier returns the priority queue strategy in use.
func (e *Engine) Frontier() Frontier { return e.kind }

// DistanceTo returns the tentative distance of v from the last query.
// Only the destination and the vertices on its path are final; the search
// stops as soon as the destination is settled.
func (e *Engine) DistanceTo(v uint32) (float64, error) {
	if !e.g.HasVertex(v) {
		return 0, e.invalid(v)
	}
	return e.qs.Dist[v], nil
}

// PredecessorOf returns v's predecessor from the last query, or NoVertex.
func (e *Engine) PredecessorOf(v uint32) (uint32, error) {
	if !e.g.HasVertex(v) {
		return NoVertex, e.invalid(v)
	}
	return e.qs.Pred[v], nil
}

func (e *Engine) invalid(v uint32) error {
	return fmt.Errorf("%w: %d (graph has %d vertices)", ErrInvalidVertex, v, e.g.NumVertices)
}
