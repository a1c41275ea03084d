package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linealign/mapping"
	"linealign/text"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, mapping.DefaultConfig(), cfg.MappingConfig())
	assert.Equal(t, text.MetricLevenshtein, cfg.ScoringOptions().Metric)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[matching]
threshold = 0.7

[scoring]
top_k = 3
metric = "jarowinkler"

[normalize]
lowercase = true
`)

	cfg, resolved, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, resolved)
	assert.Equal(t, 0.7, cfg.Matching.Threshold, "threshold")
	assert.Equal(t, mapping.DefaultContentWeight, cfg.Matching.ContentWeight, "untouched keys keep defaults")
	assert.Equal(t, 3, cfg.Scoring.TopK, "top_k")
	assert.Equal(t, text.MetricJaroWinkler, cfg.ScoringOptions().Metric, "metric")
	assert.True(t, cfg.Normalize.Lowercase, "lowercase")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "stat config")
}

func TestLoad_ProjectFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectConfigFile), []byte("[scoring]\ntop_k = 9\n"), 0o644))
	t.Chdir(dir)

	cfg, resolved, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProjectConfigFile, resolved)
	assert.Equal(t, 9, cfg.Scoring.TopK)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, resolved, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, "[matching]\nthreshhold = 0.2\n")

	_, _, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate_Errors(t *testing.T) {
	cases := map[string]func(*Config){
		"matching.content_weight": func(c *Config) { c.Matching.ContentWeight = -0.1 },
		"matching.simhash_weight": func(c *Config) { c.Matching.SimhashWeight = -1 },
		"scoring.top_k":           func(c *Config) { c.Scoring.TopK = -1 },
		"scoring.cache_size":      func(c *Config) { c.Scoring.CacheSize = -5 },
		"scoring.metric":          func(c *Config) { c.Scoring.Metric = "cosine" },
		"logging.level":           func(c *Config) { c.Logging.Level = "loud" },
	}
	for field, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		err := cfg.Validate()
		assert.ErrorContains(t, err, field, field)
	}
}

func TestEncode_RoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Matching.Threshold = 0.65
	cfg.Logging.File = "/tmp/linealign.log"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))
	assert.True(t, strings.Contains(buf.String(), "[matching]"), "section header")

	decoded := Default()
	require.NoError(t, Decode(&buf, &decoded))
	assert.Equal(t, cfg, decoded)
}
