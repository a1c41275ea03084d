package text

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Metric selects the content similarity function used to score line pairs.
type Metric int

const (
	MetricLevenshtein Metric = iota
	MetricJaroWinkler
)

// String returns the configuration name of the metric
func (m Metric) String() string {
	switch m {
	case MetricLevenshtein:
		return "levenshtein"
	case MetricJaroWinkler:
		return "jarowinkler"
	default:
		return "unknown"
	}
}

// ParseMetric parses a metric name as used in configuration files and flags.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "levenshtein":
		return MetricLevenshtein, nil
	case "jarowinkler", "jaro-winkler":
		return MetricJaroWinkler, nil
	default:
		return 0, fmt.Errorf("unknown similarity metric %q", s)
	}
}

// Similarity scores two lines with the selected metric.
func (m Metric) Similarity(line1, line2 string) float64 {
	if m == MetricJaroWinkler {
		return JaroWinkler(line1, line2)
	}
	return LineSimilarity(line1, line2)
}

// LineSimilarity computes a similarity score between two lines (0.0 to 1.0)
// using Levenshtein ratio: 1 - (levenshtein_distance / max_length)
// Empty lines have 0 similarity with non-empty lines.
func LineSimilarity(line1, line2 string) float64 {
	if line1 == "" && line2 == "" {
		return 1.0
	}
	if line1 == "" || line2 == "" {
		return 0.0
	}
	if line1 == line2 {
		return 1.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(line1, line2, false)
	levenshteinDist := dmp.DiffLevenshtein(diffs)

	// DiffLevenshtein counts runes
	maxLen := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))

	return 1.0 - float64(levenshteinDist)/float64(maxLen)
}

// JaroWinkler computes the Jaro-Winkler similarity between two lines.
func JaroWinkler(line1, line2 string) float64 {
	if line1 == "" && line2 == "" {
		return 1.0
	}
	if line1 == "" || line2 == "" {
		return 0.0
	}
	return matchr.JaroWinkler(line1, line2, false)
}
