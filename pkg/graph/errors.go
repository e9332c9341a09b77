package graph

import "errors"

// Sentinel errors for graph construction.
var (
	// ErrVertexOutOfRange is returned when an id is not in 0..NumVertices-1.
	ErrVertexOutOfRange = errors.New("vertex id out of range")

	// ErrDuplicateVertex is returned when a vertex id is assigned twice.
	ErrDuplicateVertex = errors.New("duplicate vertex id")

	// ErrVertexUnassigned is returned when an edge references, or Build finds,
	// a vertex slot that was never given coordinates.
	ErrVertexUnassigned = errors.New("vertex not assigned")

	// ErrSelfLoop is returned for an edge whose endpoints are equal.
	ErrSelfLoop = errors.New("self-loop")

	// ErrNegativeWeight is returned for a negative or non-finite edge weight.
	ErrNegativeWeight = errors.New("invalid edge weight")

	// ErrEmptyGraph is returned when a builder is created with no vertices.
	ErrEmptyGraph = errors.New("graph must have at least one vertex")

	// ErrBuilt is returned when a builder is used after Build.
	ErrBuilt = errors.New("builder already built")
)
