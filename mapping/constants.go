package mapping

const (
	// DefaultThreshold is the minimum combined score a left line's best
	// candidate needs to become an accepted claim. Scores equal to the
	// threshold are accepted.
	DefaultThreshold = 0.5

	// DefaultContentWeight is the weight given to the content-based
	// similarity score when combining signals.
	DefaultContentWeight = 0.6

	// DefaultSimhashWeight is the weight given to the SimHash-based
	// structural similarity score when combining signals.
	DefaultSimhashWeight = 0.4
)

// Weights controls how much the content and structural scores contribute
// to a combined score. They are expected, but not required, to sum to 1.
type Weights struct {
	Content float64
	Simhash float64
}

// DefaultWeights returns the 0.6 content / 0.4 structural split.
func DefaultWeights() Weights {
	return Weights{Content: DefaultContentWeight, Simhash: DefaultSimhashWeight}
}

// Config holds the per-run settings of the matching engine.
type Config struct {
	Threshold float64
	Weights   Weights
}

// DefaultConfig returns a Config using DefaultThreshold and DefaultWeights.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, Weights: DefaultWeights()}
}
