package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"map_query/pkg/graph"
	"map_query/pkg/loader"
)

func newTestGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := loader.Load(strings.NewReader("2 1\n0 0 0\n1 1 0\n0 1 1\n"), loader.Config{})
	require.NoError(t, err)
	return g
}
