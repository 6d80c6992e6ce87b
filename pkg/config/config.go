package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/tilezen/hilbert/pkg/hilbert"
)

// CurveConfig selects the curve the hilbert command works on.
type CurveConfig struct {
	Dims   int  `yaml:"dims"`
	Bits   int  `yaml:"bits"`
	Strict bool `yaml:"strict"`
}

// LogConfig controls the go-kit logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AWSConfig holds the S3 client settings.
type AWSConfig struct {
	Region     string `yaml:"region"`
	MaxRetries int    `yaml:"max-retries"`
}

// OutputConfig controls how tile lists are written.
type OutputConfig struct {
	Compress bool `yaml:"compress"`
}

// Config is the shared configuration of the binaries. Command line flags
// override whatever a file sets.
type Config struct {
	Curve       CurveConfig  `yaml:"curve"`
	Concurrency int          `yaml:"concurrency"`
	Log         LogConfig    `yaml:"log"`
	AWS         AWSConfig    `yaml:"aws"`
	Output      OutputConfig `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Curve: CurveConfig{Dims: 2, Bits: 16},
		Log:   LogConfig{Level: "info", Format: "logfmt"},
		AWS:   AWSConfig{Region: "us-east-1", MaxRetries: 3},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r into cfg, leaving unset fields alone. Unknown
// keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the values that have constraints.
func (c *Config) Validate() error {
	if err := hilbert.Validate(c.Curve.Dims, c.Curve.Bits); err != nil {
		return fmt.Errorf("curve: %w", err)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.AWS.MaxRetries < 0 {
		return fmt.Errorf("aws max-retries must not be negative, got %d", c.AWS.MaxRetries)
	}
	switch c.Log.Format {
	case "logfmt", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// CurveOptions turns the curve settings into hilbert options.
func (c *Config) CurveOptions() []hilbert.Option {
	opts := []hilbert.Option{hilbert.Concurrency(c.Concurrency)}
	if c.Curve.Strict {
		opts = append(opts, hilbert.Strict())
	}
	return opts
}
