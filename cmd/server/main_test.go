package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"map_query/pkg/config"
)

const serverYAML = `
graph:
  path: /data/city.txt
engine:
  frontier: indexed
  component_check: false
  pool_size: 6
server:
  addr: ":9090"
`

func TestResolveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte(serverYAML), 0o644))

	fromFile, err := config.Load(path)
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		want func(c *config.Config)
		base config.Config
	}{
		{
			name: "defaults",
			base: config.Default(),
		},
		{
			name: "flags only",
			args: []string{"--graph", "g.txt", "--frontier", "indexed", "--pool-size", "2", "--component-check=false"},
			base: config.Default(),
			want: func(c *config.Config) {
				c.Graph.Path = "g.txt"
				c.Engine.Frontier = "indexed"
				c.Engine.PoolSize = 2
				c.Engine.ComponentCheck = false
			},
		},
		{
			name: "config only",
			args: []string{"--config", path},
			base: fromFile,
		},
		{
			name: "changed flags override config",
			args: []string{"--config", path, "--pool-size", "2", "--addr", ":7070", "--component-check=true"},
			base: fromFile,
			want: func(c *config.Config) {
				c.Engine.PoolSize = 2
				c.Server.Addr = ":7070"
				c.Engine.ComponentCheck = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, err := resolveConfig(cmd)
			require.NoError(t, err)

			want := tt.base
			if tt.want != nil {
				tt.want(&want)
			}
			require.Equal(t, want, got)
		})
	}
}

func TestResolveConfigRejectsInvalidFlag(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--frontier", "fibonacci"}))

	_, err := resolveConfig(cmd)
	require.ErrorContains(t, err, "engine.frontier")
}

func TestResolveConfigMissingFile(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}))

	_, err := resolveConfig(cmd)
	require.ErrorIs(t, err, os.ErrNotExist)
}
