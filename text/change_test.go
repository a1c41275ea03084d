package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChange_Unchanged(t *testing.T) {
	assert.Equal(t, LineChange{Type: ChangeNone}, ClassifyChange("return x", "return x"))
}

func TestClassifyChange_AppendChars(t *testing.T) {
	change := ClassifyChange("return x", "return x + 1")

	assert.Equal(t, ChangeAppendChars, change.Type, "Type")
	assert.Equal(t, 8, change.ColStart, "ColStart")
	assert.Equal(t, 12, change.ColEnd, "ColEnd")
}

func TestClassifyChange_DeleteChars(t *testing.T) {
	change := ClassifyChange("return x + 1", "return x")

	assert.Equal(t, ChangeDeleteChars, change.Type, "Type")
	assert.Equal(t, 8, change.ColStart, "ColStart")
}

func TestClassifyChange_ReplaceChars(t *testing.T) {
	change := ClassifyChange("total = price", "total = sum")

	assert.Equal(t, ChangeReplaceChars, change.Type, "Type")
	assert.Equal(t, 8, change.ColStart, "ColStart")
	assert.Equal(t, 11, change.ColEnd, "ColEnd")
}

func TestClassifyChange_Modification(t *testing.T) {
	assert.Equal(t, ChangeModification, ClassifyChange("alpha", "zzz").Type)
}

func TestIsComplexModification(t *testing.T) {
	assert.True(t, isComplexModification("one two three", "x"), "too many words")
	assert.True(t, isComplexModification("a", "abcdefgh"), "single word grows too much")
	assert.False(t, isComplexModification("price", "sum"), "similar single words")
	assert.True(t, isComplexModification("", "a long insertion"), "long insertion without deletion")
}

func TestChangeTypeString(t *testing.T) {
	assert.Equal(t, "unchanged", ChangeNone.String())
	assert.Equal(t, "replace_chars", ChangeReplaceChars.String())
	assert.Equal(t, "unknown", ChangeType(99).String())
}
