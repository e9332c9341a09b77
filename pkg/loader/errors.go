package loader

import "fmt"

// ErrorKind classifies an ingestion failure.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindHeader
	KindFieldCount
	KindNumber
	KindVertexRange
	KindDuplicateVertex
	KindUnassignedVertex
	KindEdgeEndpoint
	KindSelfLoop
	KindNegativeWeight
	KindTruncated
	KindTrailingData
)

var kindNames = [...]string{
	KindIO:               "io",
	KindHeader:           "header",
	KindFieldCount:       "field count",
	KindNumber:           "number",
	KindVertexRange:      "vertex out of range",
	KindDuplicateVertex:  "duplicate vertex",
	KindUnassignedVertex: "unassigned vertex",
	KindEdgeEndpoint:     "edge endpoint",
	KindSelfLoop:         "self-loop",
	KindNegativeWeight:   "negative weight",
	KindTruncated:        "truncated input",
	KindTrailingData:     "trailing data",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// IngestionError reports why a load was aborted. Line is 1-based; zero means
// the failure is not tied to a single line (I/O, unassigned slots).
// A load that returns an IngestionError never returns a graph.
type IngestionError struct {
	Line int
	Kind ErrorKind
	Err  error
}

func (e *IngestionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

func ingestErr(line int, kind ErrorKind, format string, args ...any) *IngestionError {
	return &IngestionError{Line: line, Kind: kind, Err: fmt.Errorf(format, args...)}
}
