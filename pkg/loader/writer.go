package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"map_query/pkg/graph"
)

// WriteFile writes g to path in the text format, replacing any existing file.
func WriteFile(path string, g *graph.Graph, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create graph file: %w", err)
	}
	if err := Write(f, g, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write emits g in the text format. Each undirected edge is written once,
// from its lower endpoint. A directed record with no matching reverse record
// is written as an undirected edge, so Load(Write(g)) may gain arcs but
// never loses reachability.
func Write(w io.Writer, g *graph.Graph, cfg Config) error {
	if _, err := ParseEncoding(string(cfg.Encoding)); err != nil {
		return err
	}

	numEdges := 0
	for u := uint32(0); u < g.NumVertices; u++ {
		for _, e := range g.EdgesOf(u) {
			if emitted(g, u, e) {
				numEdges++
			}
		}
	}

	bw := bufio.NewWriterSize(w, 256*1024)
	buf := make([]byte, 0, 64)

	buf = strconv.AppendUint(buf[:0], uint64(g.NumVertices), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(numEdges), 10)
	buf = append(buf, '\n')
	if _, err := bw.Write(buf); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for id := uint32(0); id < g.NumVertices; id++ {
		buf = strconv.AppendUint(buf[:0], uint64(id), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, g.X[id], 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, g.Y[id], 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write vertex %d: %w", id, err)
		}
	}

	for u := uint32(0); u < g.NumVertices; u++ {
		for _, e := range g.EdgesOf(u) {
			if !emitted(g, u, e) {
				continue
			}
			buf = strconv.AppendUint(buf[:0], uint64(u), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, uint64(e.Target), 10)
			if cfg.Encoding != CoordinateDerived {
				buf = append(buf, ' ')
				buf = strconv.AppendFloat(buf, e.Weight, 'g', -1, 64)
			}
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("write edge %d-%d: %w", u, e.Target, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush graph: %w", err)
	}
	return nil
}

// emitted reports whether the record u→e.Target is written. The record from
// the higher endpoint is skipped when its reverse twin exists.
func emitted(g *graph.Graph, u uint32, e graph.Edge) bool {
	if u < e.Target {
		return true
	}
	for _, r := range g.EdgesOf(e.Target) {
		if r.Target == u && r.Weight == e.Weight {
			return false
		}
	}
	return true
}
