package mapping

import (
	"cmp"
	"slices"

	"linealign/logger"
)

// Pair identifies a (left line, right line) combination. Left and right
// indices live in independent index spaces.
type Pair struct {
	Left  int
	Right int
}

// ScoreTable maps a pair to a similarity score. A missing pair means no
// evidence and is read as 0.
type ScoreTable map[Pair]float64

// Shortlists maps a left index to the ordered right indices worth scoring.
// Order matters: among equally scored candidates the earliest one wins.
type Shortlists map[int][]int

// Inputs groups the precomputed tables consumed by one alignment run.
type Inputs struct {
	Content    ScoreTable
	Simhash    ScoreTable
	Shortlists Shortlists
}

// Match is a scored right-line candidate.
type Match struct {
	Right int
	Score float64
}

// Claim is a left line's preliminary pick before conflict resolution
type Claim struct {
	Left int
	// Best is the highest-scoring shortlist candidate, nil when the
	// shortlist was empty.
	Best *Match
	// Accepted is true only when Best exists and its score cleared the
	// threshold.
	Accepted bool
}

// Mapping is the final left -> right assignment. No right index appears
// twice and unmatched left indices are absent.
type Mapping map[int]int

// Result is the outcome of Align.
type Result struct {
	Mapping Mapping
	// Claims holds one claim per shortlisted left index, ordered by left index.
	Claims []Claim
	// Dropped holds accepted claims that lost their right target to a
	// higher-priority claim, in resolution order.
	Dropped []Claim
}

// ChooseBestMatch returns the candidate with the highest combined score.
// Candidates are visited in the order given and only a strictly greater
// score replaces the current best, so ties go to the earliest candidate.
// The boolean is false when candidates is empty.
func ChooseBestMatch(left int, candidates []int, in *Inputs, w Weights) (Match, bool) {
	var best Match
	found := false

	for _, right := range candidates {
		score := pairScore(in, Pair{Left: left, Right: right}, w)
		if !found || score > best.Score {
			best = Match{Right: right, Score: score}
			found = true
		}
	}

	return best, found
}

// Claims picks the best candidate for every shortlisted left index and
// applies the acceptance threshold. Claims below the threshold are kept,
// marked as not accepted. The result is ordered by left index.
func Claims(in *Inputs, cfg Config) []Claim {
	if in == nil {
		return nil
	}

	lefts := make([]int, 0, len(in.Shortlists))
	for left := range in.Shortlists {
		lefts = append(lefts, left)
	}
	slices.Sort(lefts)

	claims := make([]Claim, 0, len(lefts))
	for _, left := range lefts {
		claim := Claim{Left: left}
		if best, ok := ChooseBestMatch(left, in.Shortlists[left], in, cfg.Weights); ok {
			claim.Best = &best
			claim.Accepted = best.Score >= cfg.Threshold
		}
		claims = append(claims, claim)
	}
	return claims
}

// ResolveConflicts turns preliminary claims into an injective mapping.
// Accepted claims are walked by score, highest first, with ties going to the
// lower left index. The first claim on a right index wins it; later claims
// on the same right index are dropped outright and returned separately.
// Dropped lines are not offered another candidate.
func ResolveConflicts(claims []Claim) (Mapping, []Claim) {
	accepted := make([]Claim, 0, len(claims))
	for _, c := range claims {
		if c.Accepted && c.Best != nil {
			accepted = append(accepted, c)
		}
	}

	slices.SortFunc(accepted, func(a, b Claim) int {
		if c := cmp.Compare(b.Best.Score, a.Best.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Left, b.Left)
	})

	final := make(Mapping, len(accepted))
	taken := make(map[int]int, len(accepted)) // right -> winning left
	var dropped []Claim

	for _, c := range accepted {
		if winner, ok := taken[c.Best.Right]; ok {
			logger.Debug("mapping: left %d lost right %d to left %d (score %.4f)", c.Left, c.Best.Right, winner, c.Best.Score)
			dropped = append(dropped, c)
			continue
		}
		taken[c.Best.Right] = c.Left
		final[c.Left] = c.Best.Right
	}

	return final, dropped
}

// Align runs candidate selection, the threshold gate and conflict
// resolution over one set of inputs.
func Align(in *Inputs, cfg Config) *Result {
	defer logger.Trace("mapping.Align")()

	claims := Claims(in, cfg)
	final, dropped := ResolveConflicts(claims)
	return &Result{
		Mapping: final,
		Claims:  claims,
		Dropped: dropped,
	}
}

// GenerateMapping is Align without the bookkeeping.
func GenerateMapping(in *Inputs, cfg Config) Mapping {
	return Align(in, cfg).Mapping
}
