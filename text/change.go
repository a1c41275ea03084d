package text

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// ComplexModWordCountThreshold is the maximum word count (per side) for a
	// change to be considered simple enough for character-level reporting.
	ComplexModWordCountThreshold = 2

	// MaxWordCountDifference is the maximum difference in word count between
	// deleted and inserted text for character-level change classification.
	MaxWordCountDifference = 1

	// MinLengthForEmptyDeletion is the minimum insertion length to treat
	// an empty-deletion + insertion as a full modification.
	MinLengthForEmptyDeletion = 10

	// SingleWordMaxRatio and SingleWordMinRatio are the length ratio bounds
	// for single-word replacements. Outside these bounds, the change is complex.
	SingleWordMaxRatio = 3.0
	SingleWordMinRatio = 0.33

	// MultiWordMaxRatio and MultiWordMinRatio are the length ratio bounds
	// for multi-word replacements. Stricter than single-word bounds.
	MultiWordMaxRatio = 2.0
	MultiWordMinRatio = 0.5
)

// ChangeType describes how an aligned right line differs from its left line.
type ChangeType int

const (
	ChangeNone ChangeType = iota
	ChangeAppendChars
	ChangeDeleteChars
	ChangeReplaceChars
	ChangeModification
)

// String returns the report name of the change type
func (ct ChangeType) String() string {
	switch ct {
	case ChangeNone:
		return "unchanged"
	case ChangeAppendChars:
		return "append_chars"
	case ChangeDeleteChars:
		return "delete_chars"
	case ChangeReplaceChars:
		return "replace_chars"
	case ChangeModification:
		return "modification"
	default:
		return "unknown"
	}
}

// LineChange is the classified difference between two aligned lines.
// ColStart and ColEnd are 0-based byte columns in the new line and are only
// set for the character-level change types.
type LineChange struct {
	Type     ChangeType
	ColStart int
	ColEnd   int
}

// ClassifyChange determines the type of change between two aligned lines and
// returns the affected column range in newLine.
func ClassifyChange(oldLine, newLine string) LineChange {
	if oldLine == newLine {
		return LineChange{Type: ChangeNone}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldLine, newLine, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var insertions, deletions int
	var hasEqual bool
	var deletedText, insertedText string

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			insertions++
			insertedText = diff.Text
		case diffmatchpatch.DiffDelete:
			deletions++
			deletedText = diff.Text
		case diffmatchpatch.DiffEqual:
			hasEqual = true
		}
	}

	switch {
	case deletions == 0 && insertions > 0 && hasEqual:
		return classifyPureInsertion(oldLine, newLine, diffs, insertions)
	case insertions == 0 && deletions > 0 && hasEqual:
		return classifyPureDeletion(diffs)
	case insertions == 1 && deletions == 1 && hasEqual:
		return classifySingleReplacement(diffs, deletedText, insertedText)
	}

	return LineChange{Type: ChangeModification}
}

// classifyPureInsertion handles cases with only insertions (no deletions)
func classifyPureInsertion(oldLine, newLine string, diffs []diffmatchpatch.Diff, insertions int) LineChange {
	if strings.HasPrefix(newLine, oldLine) {
		return LineChange{Type: ChangeAppendChars, ColStart: len(oldLine), ColEnd: len(newLine)}
	}

	if insertions == 1 {
		if start, end, ok := insertedSpan(diffs); ok {
			return LineChange{Type: ChangeReplaceChars, ColStart: start, ColEnd: end}
		}
	}

	return LineChange{Type: ChangeModification}
}

// classifyPureDeletion handles cases with only deletions. The reported column
// is where the removed text used to start in the new line.
func classifyPureDeletion(diffs []diffmatchpatch.Diff) LineChange {
	pos := 0
	for _, diff := range diffs {
		if diff.Type == diffmatchpatch.DiffDelete {
			return LineChange{Type: ChangeDeleteChars, ColStart: pos, ColEnd: pos}
		}
		if diff.Type == diffmatchpatch.DiffEqual {
			pos += len(diff.Text)
		}
	}
	return LineChange{Type: ChangeModification}
}

// classifySingleReplacement handles cases with exactly one deletion and one insertion
func classifySingleReplacement(diffs []diffmatchpatch.Diff, deletedText, insertedText string) LineChange {
	if isComplexModification(deletedText, insertedText) {
		return LineChange{Type: ChangeModification}
	}
	if start, end, ok := insertedSpan(diffs); ok {
		return LineChange{Type: ChangeReplaceChars, ColStart: start, ColEnd: end}
	}
	return LineChange{Type: ChangeModification}
}

// insertedSpan returns the new-line columns covered by the first insertion.
func insertedSpan(diffs []diffmatchpatch.Diff) (int, int, bool) {
	pos := 0
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			return pos, pos + len(diff.Text), true
		case diffmatchpatch.DiffEqual:
			pos += len(diff.Text)
		}
	}
	return 0, 0, false
}

// isComplexModification determines if a deletion+insertion pair is too complex for simple replacement
func isComplexModification(deletedText, insertedText string) bool {
	deletedWords := len(strings.Fields(deletedText))
	insertedWords := len(strings.Fields(insertedText))

	if deletedWords > ComplexModWordCountThreshold || insertedWords > ComplexModWordCountThreshold {
		return true
	}

	if abs(deletedWords-insertedWords) > MaxWordCountDifference {
		return true
	}

	deletedLen := len(deletedText)
	insertedLen := len(insertedText)

	if deletedLen == 0 {
		return insertedLen > MinLengthForEmptyDeletion
	}

	lengthRatio := float64(insertedLen) / float64(deletedLen)

	// For single-word changes, be lenient
	if deletedWords == 1 && insertedWords == 1 {
		return lengthRatio > SingleWordMaxRatio || lengthRatio < SingleWordMinRatio
	}

	return lengthRatio > MultiWordMaxRatio || lengthRatio < MultiWordMinRatio
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
