package scoring

import (
	"cmp"
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"linealign/logger"
	"linealign/mapping"
	"linealign/text"
)

const (
	// DefaultTopK is the number of right-line candidates kept per left line.
	DefaultTopK = 5

	// DefaultCacheSize bounds the number of cached line fingerprints.
	DefaultCacheSize = 4096
)

// Options configures a Scorer.
type Options struct {
	// TopK is the shortlist length per left line; zero or less keeps every right line.
	TopK int
	// Metric scores line content.
	Metric text.Metric
	// CacheSize is the fingerprint cache capacity; zero or less uses DefaultCacheSize.
	CacheSize int
}

// Scorer builds the score tables and shortlists consumed by the mapping
// engine. It is safe for concurrent use.
type Scorer struct {
	opts         Options
	fingerprints *lru.Cache[string, fingerprint]
}

type fingerprint struct {
	hash uint64
	ok   bool
}

// New creates a Scorer.
func New(opts Options) (*Scorer, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, fingerprint](size)
	if err != nil {
		return nil, fmt.Errorf("create fingerprint cache: %w", err)
	}
	return &Scorer{opts: opts, fingerprints: cache}, nil
}

type candidate struct {
	right   int
	content float64
}

// Score compares every left line against every right line with the content
// metric, keeps the TopK best right lines per left line as its shortlist
// (content score descending, lower right index first on ties) and records
// content and SimHash scores for the shortlisted pairs.
func (s *Scorer) Score(left, right []text.Line) *mapping.Inputs {
	defer logger.Trace("scoring.Score")()

	in := &mapping.Inputs{
		Content:    make(mapping.ScoreTable),
		Simhash:    make(mapping.ScoreTable),
		Shortlists: make(mapping.Shortlists, len(left)),
	}

	rightPrints := make([]fingerprint, len(right))
	for j, r := range right {
		rightPrints[j] = s.fingerprint(r.Text)
	}

	candidates := make([]candidate, len(right))
	for i, l := range left {
		for j, r := range right {
			candidates[j] = candidate{right: j, content: s.opts.Metric.Similarity(l.Text, r.Text)}
		}
		ranked := slices.Clone(candidates)
		slices.SortStableFunc(ranked, func(a, b candidate) int {
			if c := cmp.Compare(b.content, a.content); c != 0 {
				return c
			}
			return cmp.Compare(a.right, b.right)
		})
		if s.opts.TopK > 0 && len(ranked) > s.opts.TopK {
			ranked = ranked[:s.opts.TopK]
		}

		leftPrint := s.fingerprint(l.Text)
		shortlist := make([]int, 0, len(ranked))
		for _, c := range ranked {
			pair := mapping.Pair{Left: i, Right: c.right}
			in.Content[pair] = c.content
			in.Simhash[pair] = simhashScore(leftPrint, rightPrints[c.right])
			shortlist = append(shortlist, c.right)
		}
		in.Shortlists[i] = shortlist
	}

	logger.Debug("scoring: %d left x %d right lines, %d scored pairs", len(left), len(right), len(in.Content))
	return in
}

func (s *Scorer) fingerprint(line string) fingerprint {
	if fp, ok := s.fingerprints.Get(line); ok {
		return fp
	}
	hash, ok := text.Simhash(line)
	fp := fingerprint{hash: hash, ok: ok}
	s.fingerprints.Add(line, fp)
	return fp
}

func simhashScore(a, b fingerprint) float64 {
	if !a.ok || !b.ok {
		return 0
	}
	return text.SimhashSimilarity(a.hash, b.hash)
}
