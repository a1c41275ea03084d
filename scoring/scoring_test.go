package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linealign/mapping"
	"linealign/text"
)

func newTestScorer(t *testing.T, opts Options) *Scorer {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func TestScore_ShortlistIsTopK(t *testing.T) {
	left := text.NormalizeDocument("total = total + price\n", false)
	right := text.NormalizeDocument("print(total)\ntotal = total + cost\nreturn total\ntotal = total + price\n", false)

	in := newTestScorer(t, Options{TopK: 2}).Score(left, right)

	require.Contains(t, in.Shortlists, 0)
	assert.Equal(t, []int{3, 1}, in.Shortlists[0], "best content matches first")
	assert.Equal(t, 1.0, in.Content[mapping.Pair{Left: 0, Right: 3}], "identical lines")
	assert.Equal(t, 1.0, in.Simhash[mapping.Pair{Left: 0, Right: 3}], "identical fingerprints")
	assert.Len(t, in.Content, 2, "only shortlisted pairs are scored")
	assert.Len(t, in.Simhash, 2, "only shortlisted pairs are scored")
}

func TestScore_TiesKeepLowerRightIndex(t *testing.T) {
	left := text.NormalizeDocument("x = 1\n", false)
	right := text.NormalizeDocument("y = 2\nx = 1\ny = 2\nx = 1\n", false)

	in := newTestScorer(t, Options{TopK: 3}).Score(left, right)

	assert.Equal(t, []int{1, 3, 0}, in.Shortlists[0])
}

func TestScore_ZeroTopKKeepsEverything(t *testing.T) {
	left := text.NormalizeDocument("a\nb\n", false)
	right := text.NormalizeDocument("a\nb\nc\n", false)

	in := newTestScorer(t, Options{}).Score(left, right)

	assert.Len(t, in.Shortlists[0], 3, "left 0 shortlist")
	assert.Len(t, in.Shortlists[1], 3, "left 1 shortlist")
	assert.Len(t, in.Content, 6, "full cross product")
}

func TestScore_EmptyRightDocument(t *testing.T) {
	left := text.NormalizeDocument("a\n", false)

	in := newTestScorer(t, Options{TopK: 3}).Score(left, nil)

	require.Contains(t, in.Shortlists, 0)
	assert.Empty(t, in.Shortlists[0], "empty shortlist")
	assert.Empty(t, mapping.GenerateMapping(in, mapping.DefaultConfig()), "nothing to map")
}

func TestScore_FingerprintsAreCached(t *testing.T) {
	left := text.NormalizeDocument("a = b\na = b\n", false)
	right := text.NormalizeDocument("a = b\nc = d\n", false)
	s := newTestScorer(t, Options{TopK: 1, CacheSize: 8})

	s.Score(left, right)

	assert.Equal(t, 2, s.fingerprints.Len(), "one entry per distinct line text")
}

func TestScore_EndToEndAlignment(t *testing.T) {
	left := text.NormalizeDocument(
		"def add(a, b):\n    return a + b\n\ndef sub(a, b):\n    return a - b\n", false)
	right := text.NormalizeDocument(
		"def sub(a, b):\n    return a - b\n\ndef add(a, b):\n    # sum\n    return a + b\n", false)

	in := newTestScorer(t, Options{TopK: 3, Metric: text.MetricLevenshtein}).Score(left, right)
	got := mapping.GenerateMapping(in, mapping.DefaultConfig())

	assert.Equal(t, mapping.Mapping{0: 2, 1: 3, 2: 0, 3: 1}, got)
}

func TestScore_JaroWinklerMetric(t *testing.T) {
	left := text.NormalizeDocument("value = compute()\n", false)
	right := text.NormalizeDocument("other()\nvalue = compute()\n", false)

	in := newTestScorer(t, Options{TopK: 1, Metric: text.MetricJaroWinkler}).Score(left, right)

	assert.Equal(t, []int{1}, in.Shortlists[0])
	assert.InDelta(t, 1.0, in.Content[mapping.Pair{Left: 0, Right: 1}], 1e-9, "identical lines")
}
