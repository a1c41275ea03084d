package text

const (
	// SimhashBits is the width of a line fingerprint.
	SimhashBits = 64

	// commentMarker starts a comment that runs to the end of the line.
	// A doubled slash does the same.
	commentMarker = '#'
)

// operatorRunes are emitted as standalone tokens during normalization.
var operatorRunes = map[rune]bool{
	'+': true, '-': true, '*': true, '/': true, '%': true, '!': true,
	'>': true, '<': true, ':': true, ';': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
}
