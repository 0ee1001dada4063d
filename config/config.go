// Package config loads qrec settings from defaults, an optional YAML file and QREC_ environment variables.
//
// Sources are layered in that order, later ones overriding earlier ones. Nested keys are written
// with a double underscore in the environment, so QREC_LEARNING__EPOCHS sets learning.epochs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/sw965/qrec/logging"
	"github.com/sw965/qrec/ql"
)

const (
	EnvPrefix     = "QREC_"
	PathEnvVar    = "QREC_CONFIG"
	nestDelimiter = "__"
)

var ErrInvalid = errors.New("config: invalid")

type LearningConfig struct {
	LearningRate    float64 `koanf:"learning_rate"`
	DiscountFactor  float64 `koanf:"discount_factor"`
	ExplorationRate float64 `koanf:"exploration_rate"`
	Epochs          int     `koanf:"epochs"`
}

type BenchConfig struct {
	Runs    int `koanf:"runs"`
	Workers int `koanf:"workers"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Config struct {
	Learning LearningConfig `koanf:"learning"`
	// Seed 0 draws a seed from the global source.
	Seed uint64 `koanf:"seed"`
	// DataPath points at a JSON observation file. Empty uses the built-in sample.
	DataPath string        `koanf:"data_path"`
	Bench    BenchConfig   `koanf:"bench"`
	Logging  LoggingConfig `koanf:"logging"`
}

func Default() *Config {
	q := ql.DefaultConfig()
	return &Config{
		Learning: LearningConfig{
			LearningRate:    q.LearningRate,
			DiscountFactor:  q.DiscountFactor,
			ExplorationRate: q.ExplorationRate,
			Epochs:          q.Epochs,
		},
		Bench: BenchConfig{
			Runs:    100,
			Workers: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path when non-empty, falling back to $QREC_CONFIG.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envTransformFunc(key string) string {
	if key == PathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, nestDelimiter, ".")
}

func (c *Config) Trainer() ql.Config {
	return ql.Config{
		LearningRate:    c.Learning.LearningRate,
		DiscountFactor:  c.Learning.DiscountFactor,
		ExplorationRate: c.Learning.ExplorationRate,
		Epochs:          c.Learning.Epochs,
	}
}

func (c *Config) Logger() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	return cfg
}

func (c *Config) Validate() error {
	if err := c.Trainer().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Bench.Runs <= 0 {
		return fmt.Errorf("%w: bench runs %d must be positive", ErrInvalid, c.Bench.Runs)
	}
	if c.Bench.Workers < 0 {
		return fmt.Errorf("%w: bench workers %d is negative", ErrInvalid, c.Bench.Workers)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}
