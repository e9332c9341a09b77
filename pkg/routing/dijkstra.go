package routing

import (
	"math"

	"github.com/rhartert/sparsesets"
)

// QueryState holds per-query distance and predecessor tables. Touched records
// every vertex written since the last reset so Reset costs O(touched), not O(n).
type QueryState struct {
	Dist    []float64
	Pred    []uint32 // NoVertex = no predecessor
	Touched *sparsesets.Set
}

// NewQueryState creates a new QueryState for a graph with n vertices.
func NewQueryState(n uint32) *QueryState {
	dist := make([]float64, n)
	pred := make([]uint32, n)
	inf := math.Inf(1)
	for i := range dist {
		dist[i] = inf
		pred[i] = NoVertex
	}
	return &QueryState{
		Dist:    dist,
		Pred:    pred,
		Touched: sparsesets.New(int(n)),
	}
}

// Reset clears only the touched entries for fast reuse.
func (qs *QueryState) Reset() {
	inf := math.Inf(1)
	for _, v := range qs.Touched.Content() {
		qs.Dist[v] = inf
		qs.Pred[v] = NoVertex
	}
	qs.Touched.Clear()
}

func (qs *QueryState) touch(v uint32, dist float64, pred uint32) {
	// v < len(Dist) always holds, so Insert cannot fail.
	_ = qs.Touched.Insert(int(v))
	qs.Dist[v] = dist
	qs.Pred[v] = pred
}

// Query computes the shortest distance from src to dst. The previous query's
// tables are reset first. The search stops when dst is popped, so tables for
// vertices off the src→dst path may hold tentative values afterwards.
//
// Invalid ids return ErrInvalidVertex and leave the engine untouched.
// Unreachable is a State, not an error.
func (e *Engine) Query(src, dst uint32) (Result, error) {
	if !e.g.HasVertex(src) {
		return Result{}, e.invalid(src)
	}
	if !e.g.HasVertex(dst) {
		return Result{}, e.invalid(dst)
	}

	qs := e.qs
	qs.Reset()
	e.front.reset()
	e.state = Running

	res := Result{State: Running, Source: src, Destination: dst}
	qs.touch(src, 0, NoVertex)

	if e.componentCheck && !e.g.Connected(src, dst) {
		return e.finish(res, Unreachable), nil
	}

	e.front.push(src, 0)
	for {
		u, d, ok := e.front.pop()
		if !ok {
			break
		}
		if d > qs.Dist[u] {
			continue // stale entry
		}
		res.Settled++
		if u == dst {
			return e.finish(res, Found), nil
		}

		for _, edge := range e.g.EdgesOf(u) {
			cand := d + edge.Weight
			if cand < qs.Dist[edge.Target] {
				qs.touch(edge.Target, cand, u)
				e.front.push(edge.Target, cand)
				res.Relaxed++
			}
		}
	}
	return e.finish(res, Unreachable), nil
}

func (e *Engine) finish(res Result, s State) Result {
	res.State = s
	res.Distance = e.qs.Dist[res.Destination]
	e.state = s
	return res
}
