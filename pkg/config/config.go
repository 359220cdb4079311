// Package config loads and validates the analyzer configuration from a YAML
// file, an optional .env file and RA_* environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Decode policies for corpora that fail to parse at the boundary.
const (
	DecodePolicyError = "error"
	DecodePolicyEmpty = "empty"
)

// Config is the top-level application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// AnalysisConfig controls the text pipeline.
type AnalysisConfig struct {
	// StopWordsFile replaces the embedded default stop-word list when set.
	StopWordsFile string `yaml:"stopWordsFile"`
	// CloudLimit caps the number of cloud entries; 0 keeps every entry.
	CloudLimit int `yaml:"cloudLimit"`
	// Workers bounds parallel tokenization; values below 2 tokenize serially.
	Workers int `yaml:"workers"`

	Stem         bool   `yaml:"stem"`
	StripMarkup  bool   `yaml:"stripMarkup"`
	DecodePolicy string `yaml:"decodePolicy"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig toggles span logging around engine calls.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided), loads a .env file from the
// working directory when one exists, and applies environment-variable
// overrides. Missing values keep their defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot honour.
func (c *Config) Validate() error {
	switch c.Analysis.DecodePolicy {
	case DecodePolicyError, DecodePolicyEmpty:
	default:
		return fmt.Errorf("analysis.decodePolicy must be %q or %q, got %q",
			DecodePolicyError, DecodePolicyEmpty, c.Analysis.DecodePolicy)
	}
	if c.Analysis.CloudLimit < 0 {
		return fmt.Errorf("analysis.cloudLimit must not be negative, got %d", c.Analysis.CloudLimit)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", c.Analysis.Workers)
	}
	return nil
}

// defaultConfig mirrors the historical engine: top 50 words, serial
// tokenization, decode failures surfaced as errors.
func defaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			CloudLimit:   50,
			Workers:      1,
			DecodePolicy: DecodePolicyError,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// applyEnvOverrides reads RA_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RA_STOPWORDS_FILE"); v != "" {
		cfg.Analysis.StopWordsFile = v
	}
	if v := os.Getenv("RA_CLOUD_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.CloudLimit = n
		}
	}
	if v := os.Getenv("RA_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Workers = n
		}
	}
	if v := os.Getenv("RA_STEM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Analysis.Stem = b
		}
	}
	if v := os.Getenv("RA_STRIP_MARKUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Analysis.StripMarkup = b
		}
	}
	if v := os.Getenv("RA_DECODE_POLICY"); v != "" {
		cfg.Analysis.DecodePolicy = strings.ToLower(v)
	}
	if v := os.Getenv("RA_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RA_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RA_TRACING_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
	if v := os.Getenv("RA_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
