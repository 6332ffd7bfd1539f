package nametable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/larskjaer/marktree/internal/nametable"
)

func TestReplaceCharsCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "", nametable.ReplaceChars("", true, true, false, false))
	assert.Equal(t, "x", nametable.ReplaceChars("x", true, true, false, false))
	assert.Equal(t, " x ", nametable.ReplaceChars(" x  ", true, true, false, false))
	assert.Equal(t, "aa b c", nametable.ReplaceChars("aa \t b c", true, true, false, false))
}

func TestReplaceCharsTrimsBoundaries(t *testing.T) {
	assert.Equal(t, "", nametable.ReplaceChars("\t \r\n", true, true, true, true))
	assert.Equal(t, "", nametable.ReplaceChars(" ", true, true, true, true))
	assert.Equal(t, "", nametable.ReplaceChars("￾", true, true, true, true))
	assert.Equal(t, "", nametable.ReplaceChars("   ", true, true, true, true))
	assert.Equal(t, "x", nametable.ReplaceChars(" x  ", true, true, true, true))
	assert.Equal(t, "aa b c", nametable.ReplaceChars("\t aa \t b c", true, true, true, true))
}

func TestReplaceCharsPreservesWhitespaceInPreformatted(t *testing.T) {
	got := nametable.ReplaceChars("a  b", false, true, false, false)
	assert.Equal(t, "a  b", got)
}

func TestClassOfRecognizesCategories(t *testing.T) {
	assert.Equal(t, nametable.WhiteSpace, nametable.ClassOf(' '))
	assert.Equal(t, nametable.WhiteSpace, nametable.ClassOf(' '))
	assert.Equal(t, nametable.Control, nametable.ClassOf(0x01))
	assert.Equal(t, nametable.WhiteSpace, nametable.ClassOf('\t'))
	assert.Equal(t, nametable.ZeroSpace, nametable.ClassOf('​'))
	assert.Equal(t, nametable.Control, nametable.ClassOf('￿'))
	assert.Equal(t, nametable.Unclassified, nametable.ClassOf('a'))
}

func TestIsAllControlOrWhitespace(t *testing.T) {
	assert.True(t, nametable.IsAllControlOrWhitespace(" \t\n"))
	assert.False(t, nametable.IsAllControlOrWhitespace(" x"))
}
