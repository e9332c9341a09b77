package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"map_query/pkg/loader"
	"map_query/pkg/routing"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
graph:
  path: /data/usa.txt
  encoding: coordinate-derived
  max_vertices: 1000000
engine:
  frontier: indexed
  component_check: false
server:
  read_timeout: 2s
`))
	require.NoError(t, err)

	require.Equal(t, "/data/usa.txt", cfg.Graph.Path)
	require.Equal(t, loader.Config{Encoding: loader.CoordinateDerived, MaxVertices: 1000000}, cfg.LoaderConfig())
	require.False(t, cfg.Engine.ComponentCheck)
	require.Equal(t, 4, cfg.Engine.PoolSize, "unset keys keep defaults")
	require.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, 5*time.Second, cfg.Server.WriteTimeout)
	require.Equal(t, ":8080", cfg.Server.Addr)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "graph:\n  pth: x\n"},
		{"bad encoding", "graph:\n  encoding: metric\n"},
		{"bad frontier", "engine:\n  frontier: fibonacci\n"},
		{"zero pool", "engine:\n  pool_size: 0\n"},
		{"zero concurrency", "server:\n  max_concurrent: 0\n"},
		{"negative timeout", "server:\n  read_timeout: -1s\n"},
		{"empty path", "graph:\n  path: \"\"\n"},
		{"malformed yaml", "graph: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.Frontier = "indexed"
	require.NoError(t, cfg.Validate())

	b := newTestGraph(t)
	e := routing.NewEngine(b, cfg.EngineOptions()...)
	require.Equal(t, routing.FrontierIndexed, e.Frontier())
}

func TestLoadFileRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Graph.Path = "roads.txt"
	cfg.Server.MaxConcurrent = 32

	data, err := cfg.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "map_query.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
