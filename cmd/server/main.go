package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"map_query/pkg/api"
	"map_query/pkg/config"
	"map_query/pkg/graph"
	"map_query/pkg/loader"
	"map_query/pkg/routing"
)

var (
	configPath     string
	graphPath      string
	encoding       string
	frontier       string
	addr           string
	corsOrigin     string
	poolSize       int
	componentCheck bool
)

// newRootCmd builds the command and binds its flags, resetting the flag
// variables to their defaults.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve shortest-path queries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML config file (flags override its values)")
	flags.StringVar(&graphPath, "graph", "graph.txt", "Path to text graph")
	flags.StringVar(&encoding, "encoding", string(loader.ExplicitWeight), "Edge encoding: explicit-weight or coordinate-derived")
	flags.StringVar(&frontier, "frontier", "lazy", "Priority queue: lazy or indexed")
	flags.StringVar(&addr, "addr", ":8080", "HTTP listen address")
	flags.StringVar(&corsOrigin, "cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flags.IntVar(&poolSize, "pool-size", 4, "Number of query engines")
	flags.BoolVar(&componentCheck, "component-check", true, "Answer cross-component queries without searching")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig loads --config when given and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if configPath == "" || flags.Changed("graph") {
		cfg.Graph.Path = graphPath
	}
	if configPath == "" || flags.Changed("encoding") {
		cfg.Graph.Encoding = encoding
	}
	if configPath == "" || flags.Changed("frontier") {
		cfg.Engine.Frontier = frontier
	}
	if configPath == "" || flags.Changed("pool-size") {
		cfg.Engine.PoolSize = poolSize
	}
	if configPath == "" || flags.Changed("component-check") {
		cfg.Engine.ComponentCheck = componentCheck
	}
	if configPath == "" || flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if configPath == "" || flags.Changed("cors-origin") {
		cfg.Server.CORSOrigin = corsOrigin
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	start := time.Now()

	// Load graph.
	log.Printf("Loading graph from %s (%s)...", cfg.Graph.Path, cfg.Graph.Encoding)
	g, err := loader.LoadFile(cfg.Graph.Path, cfg.LoaderConfig())
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}
	numComponents := graph.NumComponents(g)
	log.Printf("Loaded: %d vertices, %d edges, %d components", g.NumVertices, g.NumEdges, numComponents)

	// Build engine pool.
	pool, err := routing.NewPool(g, cfg.Engine.PoolSize, cfg.EngineOptions()...)
	if err != nil {
		return err
	}
	log.Printf("Ready in %s (%d %s engines)", time.Since(start).Round(time.Millisecond), pool.Size(), cfg.Engine.Frontier)

	// Setup HTTP server.
	stats := api.StatsResponse{
		NumVertices:   g.NumVertices,
		NumEdges:      g.NumEdges,
		NumComponents: numComponents,
		Frontier:      cfg.Engine.Frontier,
		PoolSize:      pool.Size(),
	}
	handlers := api.NewHandlers(routing.NewRouter(pool), stats)
	srv := api.NewServer(cfg.Server, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
