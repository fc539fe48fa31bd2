package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/Fepozopo/shotframe/pkg/codec"
)

// DefaultSuffix is appended to output names when neither an output
// directory nor a suffix is configured, so inputs are never overwritten.
const DefaultSuffix = "_framed"

// Step is a single command invocation.
type Step struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

func (s Step) String() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	return s.Name + " " + strings.Join(s.Args, " ")
}

// Config describes a pipeline file:
//
//	output: out/
//	suffix: _framed
//	format: png
//	steps:
//	  - name: crop
//	    args: ["1,1,1,1"]
//	  - name: roundCorners
//	    args: ["10", "white"]
type Config struct {
	Output string `yaml:"output,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
	Format string `yaml:"format,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// ParseConfig decodes and validates a pipeline document.
func ParseConfig(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse pipeline: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads a pipeline file from disk.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read pipeline %q: %w", path, err)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config back to YAML.
func (cfg *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate checks every step against the command registry.
func (cfg *Config) Validate() error {
	if len(cfg.Steps) == 0 {
		return fmt.Errorf("pipeline has no steps")
	}
	for i, s := range cfg.Steps {
		spec, ok := Lookup(s.Name)
		if !ok {
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownCommand, s.Name)
		}
		if len(s.Args) < spec.RequiredArgs() || len(s.Args) > len(spec.Args) {
			return fmt.Errorf("step %d: %s takes %d..%d args, got %d (usage: %s)",
				i+1, spec.Name, spec.RequiredArgs(), len(spec.Args), len(s.Args), spec.Usage)
		}
	}
	switch cfg.Format {
	case "", "png", "jpeg", "gif", "bmp", "tiff":
	default:
		return fmt.Errorf("unsupported output format %q", cfg.Format)
	}
	return nil
}

// OutputPath returns where the result for input is written.
func (cfg *Config) OutputPath(input string) string {
	dir := cfg.Output
	if dir == "" {
		dir = filepath.Dir(input)
	}
	suffix := cfg.Suffix
	if suffix == "" && cfg.Output == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext)
	if cfg.Format != "" {
		ext = "." + cfg.Format
	} else if codec.FormatFromPath(input) == "png" && !strings.EqualFold(ext, ".png") {
		// inputs we cannot encode back (webp, unknown) become png
		ext = ".png"
	}
	return filepath.Join(dir, base+suffix+ext)
}
