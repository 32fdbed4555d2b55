package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Orienters and checkers accepted by name.
const (
	OrienterTwoNormals = "two-normals"
	OrienterQuaternion = "quaternion"
	CheckerBrute       = "brute"
	CheckerGrid        = "grid"
)

// Config holds the parameters of a fill run. Any of them can be overridden
// from the command line.
type Config struct {
	Adsorbate  string   `json:"adsorbate" yaml:"adsorbate" toml:"adsorbate"`
	Adsorbent  string   `json:"adsorbent" yaml:"adsorbent" toml:"adsorbent"`
	N          int      `json:"n" yaml:"n" toml:"n"`
	Structures int      `json:"structures" yaml:"structures" toml:"structures"`
	Tolerance  float64  `json:"tol" yaml:"tol" toml:"tol"`
	MaxIter    int      `json:"maxiter" yaml:"maxiter" toml:"maxiter"`
	Output     string   `json:"output" yaml:"output" toml:"output"`
	Seed       uint64   `json:"seed" yaml:"seed" toml:"seed"`
	Orienter   string   `json:"orienter" yaml:"orienter" toml:"orienter"`
	Checker    string   `json:"checker" yaml:"checker" toml:"checker"`
	Retries    int      `json:"retries" yaml:"retries" toml:"retries"`
	Reorient   int      `json:"reorient" yaml:"reorient" toml:"reorient"`
	Metrics    string   `json:"metrics" yaml:"metrics" toml:"metrics"`
	Plot       string   `json:"plot" yaml:"plot" toml:"plot"`
	Curve      string   `json:"curve" yaml:"curve" toml:"curve"`
	JSON       string   `json:"json" yaml:"json" toml:"json"`
	RDF        string   `json:"rdf" yaml:"rdf" toml:"rdf"`
	RDFRef     []string `json:"rdf_ref" yaml:"rdf_ref" toml:"rdf_ref"`
	Verbose    bool     `json:"verbose" yaml:"verbose" toml:"verbose"`
	LogLevel   string   `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Default returns the configuration used for anything not given.
func Default() Config {
	return Config{
		Adsorbate:  "H2O",
		Structures: 1,
		Tolerance:  2.0,
		MaxIter:    500,
		Output:     "filled.xyz",
		Orienter:   OrienterTwoNormals,
		Checker:    CheckerBrute,
		Reorient:   50,
		LogLevel:   "info",
	}
}

// Load reads a configuration file based on its extension, on top of the defaults,
// and checks it. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg, err := Decode(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Check(); err != nil {
		return cfg, fmt.Errorf("Check: %w", err)
	}
	return cfg, nil
}

// Decode is like Load, but the result is not checked, as it may be completed later,
// for instance from the command line.
func Decode(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Check checks if Config is correct. It returns an error if a field doesn't meet
// the requirements.
func (c *Config) Check() error {
	if c.Adsorbate == "" {
		return fmt.Errorf("an adsorbate is required")
	}
	if c.Adsorbent == "" {
		return fmt.Errorf("an adsorbent is required")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tol can't be negative, got %g", c.Tolerance)
	}
	if c.Structures < 1 {
		return fmt.Errorf("structures must be at least 1, got %d", c.Structures)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("maxiter must be at least 1, got %d", c.MaxIter)
	}
	if c.N <= 0 && c.Tolerance == 0 {
		return fmt.Errorf("with tol 0 there is no limit to the molecules placed, n must be given")
	}
	if c.Retries < 0 || c.Reorient < 1 {
		return fmt.Errorf("retries can't be negative and reorient must be at least 1")
	}
	if c.Output == "" {
		return fmt.Errorf("an output file is required")
	}
	switch c.Orienter {
	case OrienterTwoNormals, OrienterQuaternion:
	default:
		return fmt.Errorf("unknown orienter %q, use %s or %s", c.Orienter, OrienterTwoNormals, OrienterQuaternion)
	}
	switch c.Checker {
	case CheckerBrute, CheckerGrid:
	default:
		return fmt.Errorf("unknown checker %q, use %s or %s", c.Checker, CheckerBrute, CheckerGrid)
	}
	return nil
}
