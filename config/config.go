package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"linealign/logger"
	"linealign/mapping"
	"linealign/scoring"
	"linealign/text"
)

// ProjectConfigFile is picked up from the working directory when no path is given.
const ProjectConfigFile = "linealign.toml"

// Matching holds the alignment engine settings.
type Matching struct {
	Threshold     float64 `toml:"threshold"`
	ContentWeight float64 `toml:"content_weight"`
	SimhashWeight float64 `toml:"simhash_weight"`
}

// Scoring holds the similarity and shortlist settings.
type Scoring struct {
	TopK      int    `toml:"top_k"`
	Metric    string `toml:"metric"`
	CacheSize int    `toml:"cache_size"`
}

// Normalize holds line normalization settings.
type Normalize struct {
	Lowercase bool `toml:"lowercase"`
}

// Logging holds logger settings. An empty File logs to stderr.
type Logging struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Config is the complete linealign configuration.
type Config struct {
	Matching  Matching  `toml:"matching"`
	Scoring   Scoring   `toml:"scoring"`
	Normalize Normalize `toml:"normalize"`
	Logging   Logging   `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Matching: Matching{
			Threshold:     mapping.DefaultThreshold,
			ContentWeight: mapping.DefaultContentWeight,
			SimhashWeight: mapping.DefaultSimhashWeight,
		},
		Scoring: Scoring{
			TopK:      scoring.DefaultTopK,
			Metric:    text.MetricLevenshtein.String(),
			CacheSize: scoring.DefaultCacheSize,
		},
		Logging: Logging{Level: "info"},
	}
}

// Load reads the configuration at path on top of the defaults. With an
// empty path, ProjectConfigFile is used when it exists. It returns the
// config, the file that was read (empty if none) and any error.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	if resolved != "" {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := Decode(file, &cfg); err != nil {
			return nil, "", err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

// Decode parses TOML from r into cfg. Keys absent from the document keep
// their current values; unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	decoder := toml.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("stat config: %w", err)
		}
		return path, nil
	}

	info, err := os.Stat(ProjectConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", nil
	}
	return ProjectConfigFile, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if _, err := logger.ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if !isFinite(c.Matching.Threshold) {
		return errors.New("matching.threshold must be a finite number")
	}
	if !isFinite(c.Matching.ContentWeight) || c.Matching.ContentWeight < 0 {
		return errors.New("matching.content_weight must be a non-negative number")
	}
	if !isFinite(c.Matching.SimhashWeight) || c.Matching.SimhashWeight < 0 {
		return errors.New("matching.simhash_weight must be a non-negative number")
	}
	return nil
}

func (c *Config) validateScoring() error {
	if c.Scoring.TopK < 0 {
		return errors.New("scoring.top_k must be zero (unlimited) or positive")
	}
	if c.Scoring.CacheSize < 0 {
		return errors.New("scoring.cache_size must not be negative")
	}
	if _, err := text.ParseMetric(c.Scoring.Metric); err != nil {
		return fmt.Errorf("scoring.metric: %w", err)
	}
	return nil
}

// MappingConfig converts the matching section into engine settings.
func (c *Config) MappingConfig() mapping.Config {
	return mapping.Config{
		Threshold: c.Matching.Threshold,
		Weights: mapping.Weights{
			Content: c.Matching.ContentWeight,
			Simhash: c.Matching.SimhashWeight,
		},
	}
}

// ScoringOptions converts the scoring section into scorer options.
// Validate must have succeeded.
func (c *Config) ScoringOptions() scoring.Options {
	metric, _ := text.ParseMetric(c.Scoring.Metric)
	return scoring.Options{
		TopK:      c.Scoring.TopK,
		Metric:    metric,
		CacheSize: c.Scoring.CacheSize,
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
