package text

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// Simhash computes a 64-bit SimHash fingerprint of a normalized line from
// its whitespace-separated tokens. Lines whose token sets share most tokens
// end up with fingerprints a small Hamming distance apart. The boolean is
// false when the line has no tokens.
func Simhash(line string) (uint64, bool) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return 0, false
	}

	var bitWeights [SimhashBits]int
	for _, token := range tokens {
		h := hashToken64(token)
		for bit := 0; bit < SimhashBits; bit++ {
			if h&(uint64(1)<<bit) != 0 {
				bitWeights[bit]++
			} else {
				bitWeights[bit]--
			}
		}
	}

	var result uint64
	for bit := 0; bit < SimhashBits; bit++ {
		if bitWeights[bit] > 0 {
			result |= uint64(1) << bit
		}
	}
	return result, true
}

// SimhashSimilarity maps the Hamming distance between two fingerprints to
// [0, 1]; identical fingerprints score 1.
func SimhashSimilarity(a, b uint64) float64 {
	return 1.0 - float64(bits.OnesCount64(a^b))/SimhashBits
}

func hashToken64(token string) uint64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(token))
	return hasher.Sum64()
}
