package text

import (
	"strings"
	"unicode"
)

// Line is a normalized, non-empty source line.
type Line struct {
	Number int // 1-indexed line number in the source document
	Text   string
}

// splitLines splits text by newline and removes trailing empty element if present
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NormalizeDocument normalizes every line of content and keeps the non-empty
// results. A line's position in the returned slice is its alignment index.
func NormalizeDocument(content string, lowercase bool) []Line {
	var out []Line
	for i, raw := range splitLines(content) {
		if normalized := NormalizeLine(raw, lowercase); normalized != "" {
			out = append(out, Line{Number: i + 1, Text: normalized})
		}
	}
	return out
}

// Texts returns the normalized text of each line.
func Texts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}

// NormalizeLine rewrites a line into space-separated tokens:
//   - whitespace only separates tokens
//   - quoted strings are kept verbatim as a single token
//   - operator characters become tokens of their own
//   - '#' or '//' outside a string drops the rest of the line
//   - with lowercase set, characters outside strings are lowercased
//
// Only the first line of a multi-line input is considered. A line with no
// tokens normalizes to "".
func NormalizeLine(line string, lowercase bool) string {
	var (
		tokens   []string
		token    strings.Builder
		quote    rune
		inString bool
		prev     rune
	)

	flush := func() {
		if token.Len() > 0 {
			tokens = append(tokens, token.String())
			token.Reset()
		}
	}

scan:
	for _, r := range line {
		switch {
		case r == '\n':
			break scan
		case inString:
			token.WriteRune(r)
			if r == quote {
				inString = false
				flush()
			}
		case r == '"' || r == '\'':
			flush()
			inString = true
			quote = r
			token.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case r == commentMarker:
			break scan
		case r == '/' && prev == '/':
			// The first slash was already emitted as an operator.
			tokens = tokens[:len(tokens)-1]
			break scan
		case operatorRunes[r]:
			flush()
			tokens = append(tokens, string(r))
		default:
			if lowercase {
				r = unicode.ToLower(r)
			}
			token.WriteRune(r)
		}
		prev = r
	}
	flush()

	return strings.Join(tokens, " ")
}
