package mapping

// CombinedScore merges a content score and a structural score into a single
// value: w.Content*content + w.Simhash*simhash. Any real inputs are accepted.
func CombinedScore(content, simhash float64, w Weights) float64 {
	return w.Content*content + w.Simhash*simhash
}

// pairScore looks up both tables for a pair and combines them.
// Missing entries count as zero.
func pairScore(in *Inputs, p Pair, w Weights) float64 {
	return CombinedScore(in.Content[p], in.Simhash[p], w)
}
