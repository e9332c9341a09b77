// Package config loads the YAML settings shared by the map_query binaries.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"map_query/pkg/loader"
	"map_query/pkg/routing"
)

// Config is the top-level configuration document.
type Config struct {
	Graph  GraphConfig  `yaml:"graph"`
	Engine EngineConfig `yaml:"engine"`
	Server ServerConfig `yaml:"server"`
}

// GraphConfig locates the text graph and fixes its edge encoding.
type GraphConfig struct {
	Path     string `yaml:"path"`
	Encoding string `yaml:"encoding"` // explicit-weight | coordinate-derived
	// MaxVertices rejects larger headers; 0 keeps the loader default.
	MaxVertices uint32 `yaml:"max_vertices"`
}

// EngineConfig shapes the per-query engines.
type EngineConfig struct {
	Frontier       string `yaml:"frontier"` // lazy | indexed
	ComponentCheck bool   `yaml:"component_check"`
	PoolSize       int    `yaml:"pool_size"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	CORSOrigin    string        `yaml:"cors_origin"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			Path:     "graph.txt",
			Encoding: string(loader.ExplicitWeight),
		},
		Engine: EngineConfig{
			Frontier:       "lazy",
			ComponentCheck: true,
			PoolSize:       4,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   5 * time.Second,
			WriteTimeout:  5 * time.Second,
			MaxConcurrent: 8,
		},
	}
}

// Load reads path and overlays it on Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	if c.Graph.Path == "" {
		errs = append(errs, errors.New("graph.path is required"))
	}
	if _, err := loader.ParseEncoding(c.Graph.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("graph.encoding: %w", err))
	}
	if _, err := routing.ParseFrontier(c.Engine.Frontier); err != nil {
		errs = append(errs, fmt.Errorf("engine.frontier: %w", err))
	}
	if c.Engine.PoolSize < 1 {
		errs = append(errs, fmt.Errorf("engine.pool_size must be positive, got %d", c.Engine.PoolSize))
	}
	if c.Server.MaxConcurrent < 1 {
		errs = append(errs, fmt.Errorf("server.max_concurrent must be positive, got %d", c.Server.MaxConcurrent))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// LoaderConfig returns the loader settings. Call after Validate.
func (c Config) LoaderConfig() loader.Config {
	enc, _ := loader.ParseEncoding(c.Graph.Encoding)
	return loader.Config{Encoding: enc, MaxVertices: c.Graph.MaxVertices}
}

// EngineOptions returns the routing options. Call after Validate.
func (c Config) EngineOptions() []routing.Option {
	f, _ := routing.ParseFrontier(c.Engine.Frontier)
	return []routing.Option{
		routing.WithFrontier(f),
		routing.WithComponentCheck(c.Engine.ComponentCheck),
	}
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
