package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"map_query/pkg/graph"
	"map_query/pkg/loader"
	osmparser "map_query/pkg/osm"
)

var (
	input     string
	output    string
	bbox      string
	singapore bool
	kl        bool
	keepAll   bool
)

var rootCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Convert an OSM PBF extract into a text graph for map_query",
	Long: `preprocess extracts the car-accessible road network from an .osm.pbf
file, keeps its largest connected component and writes it in the
explicit-weight text format. Coordinates are fixed-point degrees
(x = lon*1e7, y = lat*1e7) and weights are metres.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := parseOptions()
		if err != nil {
			return err
		}
		return run(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.Flags().StringVar(&input, "input", "", "Path to .osm.pbf file")
	rootCmd.Flags().StringVar(&output, "output", "graph.txt", "Output text graph file path")
	rootCmd.Flags().StringVar(&bbox, "bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 1.15,103.6,1.48,104.1)")
	rootCmd.Flags().BoolVar(&singapore, "singapore", false, "Shortcut for --bbox 1.15,103.6,1.48,104.1 (Singapore bounding box)")
	rootCmd.Flags().BoolVar(&kl, "kl", false, "Shortcut for --bbox 2.75,101.2,3.5,102.0 (Selangor + Kuala Lumpur bounding box)")
	rootCmd.Flags().BoolVar(&keepAll, "keep-all-components", false, "Skip largest-component extraction")
	rootCmd.MarkFlagRequired("input")
	rootCmd.MarkFlagsMutuallyExclusive("bbox", "singapore", "kl")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func parseOptions() (osmparser.ParseOptions, error) {
	var opts osmparser.ParseOptions
	switch {
	case kl:
		opts.BBox = osmparser.BBox{MinLat: 2.75, MaxLat: 3.5, MinLng: 101.2, MaxLng: 102.0}
		log.Println("Using Selangor + KL bounding box filter: lat [2.75, 3.50], lng [101.20, 102.00]")
	case singapore:
		opts.BBox = osmparser.BBox{MinLat: 1.15, MaxLat: 1.48, MinLng: 103.6, MaxLng: 104.1}
		log.Println("Using Singapore bounding box filter: lat [1.15, 1.48], lng [103.6, 104.1]")
	case bbox != "":
		b, err := parseBBox(bbox)
		if err != nil {
			return opts, err
		}
		opts.BBox = b
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", b.MinLat, b.MaxLat, b.MinLng, b.MaxLng)
	}
	return opts, nil
}

func parseBBox(s string) (osmparser.BBox, error) {
	var minLat, minLng, maxLat, maxLng float64
	if _, err := fmt.Sscanf(s, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
		return osmparser.BBox{}, fmt.Errorf("invalid bbox format (expected minLat,minLng,maxLat,maxLng): %w", err)
	}
	if minLat > maxLat || minLng > maxLng {
		return osmparser.BBox{}, fmt.Errorf("invalid bbox %q: min exceeds max", s)
	}
	return osmparser.BBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}, nil
}

func run(ctx context.Context, opts osmparser.ParseOptions) error {
	start := time.Now()

	// Step 1: Parse OSM data.
	log.Println("Opening OSM file...")
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	log.Println("Parsing OSM data...")
	net, err := osmparser.Parse(ctx, f, opts)
	if err != nil {
		return fmt.Errorf("parse OSM data: %w", err)
	}
	st := net.Stats
	log.Printf("Parsed %d segments into %d arcs over %d nodes", st.Segments, len(net.Arcs), len(net.NodeIDs))
	if st.Missing > 0 {
		log.Printf("Warning: skipped %d segments with missing node coordinates", st.Missing)
	}
	if st.Repeated > 0 {
		log.Printf("Warning: skipped %d segments between repeated nodes", st.Repeated)
	}
	if st.OutsideBBox > 0 {
		log.Printf("Filtered %d segments outside bounding box", st.OutsideBBox)
	}

	// Step 2: Build graph.
	log.Println("Building graph...")
	g, err := osmparser.ToGraph(net)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	log.Printf("Graph: %d vertices, %d edges, %d components", g.NumVertices, g.NumEdges, graph.NumComponents(g))

	// Step 3: Extract largest connected component.
	if !keepAll {
		log.Println("Extracting largest connected component...")
		componentNodes := graph.LargestComponent(g)
		log.Printf("Largest component: %d vertices (%.1f%%)", len(componentNodes), float64(len(componentNodes))/float64(g.NumVertices)*100)
		g, err = graph.FilterToComponent(g, componentNodes)
		if err != nil {
			return fmt.Errorf("filter component: %w", err)
		}
		log.Printf("Filtered graph: %d vertices, %d edges", g.NumVertices, g.NumEdges)
	}

	// Step 4: Write text graph.
	log.Printf("Writing graph to %s...", output)
	if err := loader.WriteFile(output, g, loader.Config{Encoding: loader.ExplicitWeight}); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		return err
	}
	log.Printf("Done in %s. Output: %s (%.1f MB)", time.Since(start).Round(time.Second), output, float64(info.Size())/(1024*1024))
	return nil
}
