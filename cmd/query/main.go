package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"map_query/pkg/config"
	"map_query/pkg/loader"
	"map_query/pkg/routing"
)

var (
	configPath  string
	graphPath   string
	encoding    string
	frontier    string
	queriesPath string
	showPath    bool
)

var rootCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a batch of shortest-path queries against a text graph",
	Long: `query loads a graph, then reads one "<source> <destination>" pair per
line and prints the distance, the path and the time of each query,
followed by a summary. Malformed lines are skipped with a warning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if configPath != "" {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
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
		if err := cfg.Validate(); err != nil {
			return err
		}

		log.Printf("Loading graph from %s...", cfg.Graph.Path)
		g, err := loader.LoadFile(cfg.Graph.Path, cfg.LoaderConfig())
		if err != nil {
			return fmt.Errorf("load graph: %w", err)
		}
		log.Printf("Graph loaded successfully with %d vertices.", g.NumVertices)

		in := io.Reader(os.Stdin)
		if queriesPath != "-" {
			f, err := os.Open(queriesPath)
			if err != nil {
				return fmt.Errorf("open queries: %w", err)
			}
			defer f.Close()
			in = f
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		defer out.Flush()
		_, err = runQueries(out, in, routing.NewEngine(g, cfg.EngineOptions()...), showPath)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (flags override its values)")
	rootCmd.Flags().StringVar(&graphPath, "graph", "graph.txt", "Path to text graph")
	rootCmd.Flags().StringVar(&encoding, "encoding", string(loader.ExplicitWeight), "Edge encoding: explicit-weight or coordinate-derived")
	rootCmd.Flags().StringVar(&frontier, "frontier", "lazy", "Priority queue: lazy or indexed")
	rootCmd.Flags().StringVar(&queriesPath, "queries", "-", `File of "<source> <destination>" lines ("-" reads stdin)`)
	rootCmd.Flags().BoolVar(&showPath, "path", true, "Print the vertex path of each found query")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// summary aggregates a batch run.
type summary struct {
	Queries     int
	Found       int
	Unreachable int
	Skipped     int
	Total       time.Duration
}

func (s summary) average() time.Duration {
	if s.Queries == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Queries)
}

// runQueries answers each query line from in and reports to w. Only Query
// itself is timed.
func runQueries(w io.Writer, in io.Reader, e *routing.Engine, showPath bool) (summary, error) {
	var s summary
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		src, dst, err := parseQuery(fields)
		if err != nil {
			log.Printf("Skipping invalid line %q: %v", line, err)
			s.Skipped++
			continue
		}

		start := time.Now()
		res, err := e.Query(src, dst)
		elapsed := time.Since(start)
		if err != nil {
			log.Printf("Skipping query %d -> %d: %v", src, dst, err)
			s.Skipped++
			continue
		}

		s.Queries++
		s.Total += elapsed
		fmt.Fprintf(w, "\nQuery %d: %d -> %d\n", s.Queries, src, dst)

		if res.State == routing.Found {
			s.Found++
			fmt.Fprintf(w, "Shortest distance: %.2f\n", res.Distance)
			if showPath {
				path, err := e.Reconstruct(src, dst)
				if err != nil {
					return s, err
				}
				fmt.Fprintf(w, "Path: %s\n", path)
			}
		} else {
			s.Unreachable++
			fmt.Fprintln(w, "No path found!")
		}
		fmt.Fprintf(w, "Settled: %d, relaxed: %d\n", res.Settled, res.Relaxed)
		fmt.Fprintf(w, "Query time: %.3f ms\n", float64(elapsed.Nanoseconds())/1e6)
	}
	if err := sc.Err(); err != nil {
		return s, fmt.Errorf("read queries: %w", err)
	}

	fmt.Fprintln(w, "\n=== Performance Summary ===")
	fmt.Fprintf(w, "Total queries: %d (found %d, unreachable %d, skipped %d)\n", s.Queries, s.Found, s.Unreachable, s.Skipped)
	fmt.Fprintf(w, "Total time: %.3f ms\n", float64(s.Total.Nanoseconds())/1e6)
	fmt.Fprintf(w, "Average query time: %.3f ms\n", float64(s.average().Nanoseconds())/1e6)
	return s, nil
}

func parseQuery(fields []string) (src, dst uint32, err error) {
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want 2 fields, got %d", len(fields))
	}
	s, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("source: %w", err)
	}
	d, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("destination: %w", err)
	}
	return uint32(s), uint32(d), nil
}
