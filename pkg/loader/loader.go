// Package loader ingests graphs from the line-oriented text format:
//
//	<numVertices> <numEdges>
//	<vertexId> <x> <y>             -- numVertices times
//	<sourceId> <destId> [<weight>] -- numEdges times
//
// Edges are undirected. Whether the weight column is present is fixed by the
// Encoding in Config, never detected from the input.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"map_query/pkg/geo"
	"map_query/pkg/graph"
)

// Encoding selects how edge weights are obtained.
type Encoding string

const (
	// ExplicitWeight reads the weight from the third edge field.
	ExplicitWeight Encoding = "explicit-weight"
	// CoordinateDerived omits the weight field and uses the Euclidean
	// distance between the endpoints' coordinates.
	CoordinateDerived Encoding = "coordinate-derived"
)

// ParseEncoding maps a config string to an Encoding. Empty selects ExplicitWeight.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case "", ExplicitWeight:
		return ExplicitWeight, nil
	case CoordinateDerived:
		return CoordinateDerived, nil
	}
	return "", fmt.Errorf("unknown edge encoding %q (want %q or %q)", s, ExplicitWeight, CoordinateDerived)
}

// DefaultMaxVertices is the vertex limit used when Config.MaxVertices is 0.
// It covers a continental road network.
const DefaultMaxVertices = 1 << 28

// maxEdgeHint caps the edge storage reserved from the header; larger graphs
// grow as records arrive.
const maxEdgeHint = 1 << 20

// Config fixes the loader behaviour for a deployment.
type Config struct {
	Encoding Encoding
	// MaxVertices rejects headers declaring more vertices. 0 selects
	// DefaultMaxVertices.
	MaxVertices uint32
}

func (c Config) maxVertices() uint32 {
	if c.MaxVertices == 0 {
		return DefaultMaxVertices
	}
	return c.MaxVertices
}

func (c Config) edgeFields() int {
	if c.Encoding == CoordinateDerived {
		return 2
	}
	return 3
}

// maxScanLine bounds a single record; real records are a few dozen bytes.
const maxScanLine = 1 << 20

// LoadFile opens path and loads it with Load.
func LoadFile(path string, cfg Config) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer f.Close()
	return Load(f, cfg)
}

// Load parses a graph from r. It stops at the first invalid record and
// returns an *IngestionError; no partial graph is ever returned.
func Load(r io.Reader, cfg Config) (*graph.Graph, error) {
	if _, err := ParseEncoding(string(cfg.Encoding)); err != nil {
		return nil, err
	}

	p := &parser{sc: bufio.NewScanner(r), cfg: cfg}
	p.sc.Buffer(make([]byte, 0, 64*1024), maxScanLine)

	numVertices, numEdges, err := p.header()
	if err != nil {
		return nil, err
	}
	if limit := cfg.maxVertices(); numVertices > limit {
		return nil, ingestErr(p.line, KindHeader, "vertex count %d exceeds limit %d", numVertices, limit)
	}

	b, err := graph.NewBuilder(numVertices)
	if err != nil {
		return nil, ingestErr(p.line, KindHeader, "%v", err)
	}
	b.Grow(min(2*numEdges, maxEdgeHint))

	for i := range numVertices {
		if err := p.vertex(b, i); err != nil {
			return nil, err
		}
	}
	for i := range numEdges {
		if err := p.edge(b, i); err != nil {
			return nil, err
		}
	}
	if err := p.trailing(); err != nil {
		return nil, err
	}

	g, err := b.Build()
	if err != nil {
		return nil, classify(0, err, false)
	}
	return g, nil
}

type parser struct {
	sc     *bufio.Scanner
	cfg    Config
	line   int
	fields []string
}

// next advances to the next non-blank line. ok is false at end of input.
func (p *parser) next() (ok bool, err error) {
	for p.sc.Scan() {
		p.line++
		p.fields = strings.Fields(p.sc.Text())
		if len(p.fields) > 0 {
			return true, nil
		}
	}
	if err := p.sc.Err(); err != nil {
		return false, &IngestionError{Line: p.line + 1, Kind: KindIO, Err: err}
	}
	return false, nil
}

func (p *parser) header() (numVertices uint32, numEdges int, err error) {
	ok, err := p.next()
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, ingestErr(1, KindHeader, "input is empty")
	}
	if len(p.fields) != 2 {
		return 0, 0, ingestErr(p.line, KindHeader, "want <numVertices> <numEdges>, got %d fields", len(p.fields))
	}
	nv, err := strconv.ParseInt(p.fields[0], 10, 64)
	if err != nil {
		return 0, 0, ingestErr(p.line, KindHeader, "vertex count %q is not an integer", p.fields[0])
	}
	ne, err := strconv.ParseInt(p.fields[1], 10, 64)
	if err != nil {
		return 0, 0, ingestErr(p.line, KindHeader, "edge count %q is not an integer", p.fields[1])
	}
	if nv <= 0 || nv > math.MaxUint32 {
		return 0, 0, ingestErr(p.line, KindHeader, "vertex count %d must be in [1, %d]", nv, uint32(math.MaxUint32))
	}
	if ne < 0 || ne > math.MaxUint32/2 {
		return 0, 0, ingestErr(p.line, KindHeader, "edge count %d must be in [0, %d]", ne, uint32(math.MaxUint32/2))
	}
	return uint32(nv), int(ne), nil
}

func (p *parser) record(what string, index, want int) error {
	ok, err := p.next()
	if err != nil {
		return err
	}
	if !ok {
		return ingestErr(p.line+1, KindTruncated, "input ended at %s record %d", what, index+1)
	}
	if len(p.fields) != want {
		return ingestErr(p.line, KindFieldCount, "%s record wants %d fields, got %d", what, want, len(p.fields))
	}
	return nil
}

func (p *parser) vertex(b *graph.Builder, index uint32) error {
	if err := p.record("vertex", int(index), 3); err != nil {
		return err
	}
	id, err := p.idField(0, "vertex id", KindVertexRange)
	if err != nil {
		return err
	}
	x, err := p.int64Field(1, "x")
	if err != nil {
		return err
	}
	y, err := p.int64Field(2, "y")
	if err != nil {
		return err
	}
	if err := b.SetVertex(id, x, y); err != nil {
		return classify(p.line, err, false)
	}
	return nil
}

func (p *parser) edge(b *graph.Builder, index int) error {
	if err := p.record("edge", index, p.cfg.edgeFields()); err != nil {
		return err
	}
	u, err := p.idField(0, "source id", KindEdgeEndpoint)
	if err != nil {
		return err
	}
	v, err := p.idField(1, "destination id", KindEdgeEndpoint)
	if err != nil {
		return err
	}

	var w float64
	if p.cfg.Encoding == CoordinateDerived {
		ux, uy, err := b.Coords(u)
		if err != nil {
			return classify(p.line, err, true)
		}
		vx, vy, err := b.Coords(v)
		if err != nil {
			return classify(p.line, err, true)
		}
		w = geo.Euclidean(ux, uy, vx, vy)
	} else {
		w, err = strconv.ParseFloat(p.fields[2], 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			return ingestErr(p.line, KindNumber, "weight %q is not a finite number", p.fields[2])
		}
	}

	if err := b.AddEdge(u, v, w); err != nil {
		return classify(p.line, err, true)
	}
	return nil
}

func (p *parser) trailing() error {
	ok, err := p.next()
	if err != nil {
		return err
	}
	if ok {
		return ingestErr(p.line, KindTrailingData, "unexpected record after the declared edges: %q", p.sc.Text())
	}
	return nil
}

func (p *parser) idField(i int, name string, rangeKind ErrorKind) (uint32, error) {
	v, err := strconv.ParseInt(p.fields[i], 10, 64)
	if err != nil {
		return 0, ingestErr(p.line, KindNumber, "%s %q is not an integer", name, p.fields[i])
	}
	if v < 0 || v > math.MaxUint32 {
		return 0, &IngestionError{
			Line: p.line,
			Kind: rangeKind,
			Err:  fmt.Errorf("%w: %s %d", graph.ErrVertexOutOfRange, name, v),
		}
	}
	return uint32(v), nil
}

func (p *parser) int64Field(i int, name string) (int64, error) {
	v, err := strconv.ParseInt(p.fields[i], 10, 64)
	if err != nil {
		return 0, ingestErr(p.line, KindNumber, "%s %q is not an integer", name, p.fields[i])
	}
	return v, nil
}

// classify maps a graph builder error onto an IngestionError kind. edge
// selects the endpoint kind for range and assignment failures.
func classify(line int, err error, edge bool) *IngestionError {
	kind := KindIO
	switch {
	case edge && (errors.Is(err, graph.ErrVertexOutOfRange) || errors.Is(err, graph.ErrVertexUnassigned)):
		kind = KindEdgeEndpoint
	case errors.Is(err, graph.ErrVertexOutOfRange):
		kind = KindVertexRange
	case errors.Is(err, graph.ErrDuplicateVertex):
		kind = KindDuplicateVertex
	case errors.Is(err, graph.ErrVertexUnassigned):
		kind = KindUnassignedVertex
	case errors.Is(err, graph.ErrSelfLoop):
		kind = KindSelfLoop
	case errors.Is(err, graph.ErrNegativeWeight):
		kind = KindNegativeWeight
	}
	return &IngestionError{Line: line, Kind: kind, Err: err}
}
