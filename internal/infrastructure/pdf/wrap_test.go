package pdf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsha/micro-invoicer/internal/infrastructure/pdf"
)

// charWidth measures one unit per character, making wrap bounds readable as
// plain character counts.
func charWidth(s string) float64 {
	return float64(len(s))
}

func TestWrapTextShortInputIsIdempotent(t *testing.T) {
	lines := pdf.WrapText("already short", 100, charWidth)
	require.Len(t, lines, 1)
	assert.Equal(t, "already short", lines[0])
}

func TestWrapTextKeepsEveryWord(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	lines := pdf.WrapText(text, 15, charWidth)

	require.Greater(t, len(lines), 1, "a 15-char bound must force wrapping")
	for _, line := range lines {
		assert.LessOrEqual(t, charWidth(line), 15.0, "line %q exceeds the bound", line)
	}
	assert.Equal(t, text, strings.Join(lines, " "), "wrapping must never drop or reorder words")
}

func TestWrapTextOversizeWordGetsOwnLine(t *testing.T) {
	lines := pdf.WrapText("tiny Supercalifragilisticexpialidocious end", 10, charWidth)

	require.Len(t, lines, 3)
	assert.Equal(t, "tiny", lines[0])
	assert.Equal(t, "Supercalifragilisticexpialidocious", lines[1], "an oversize word is placed alone, untruncated")
	assert.Equal(t, "end", lines[2])
}

func TestWrapTextEmptyInputYieldsOneEmptyLine(t *testing.T) {
	lines := pdf.WrapText("", 10, charWidth)
	require.Len(t, lines, 1, "empty input keeps the fixed row rhythm")
	assert.Equal(t, "", lines[0])

	lines = pdf.WrapText("   ", 10, charWidth)
	require.Len(t, lines, 1)
	assert.Equal(t, "", lines[0])
}

func TestSplitDescriptionSoftTarget(t *testing.T) {
	// shorter than the 27-char target: no split
	first, second := pdf.SplitDescription("Consultanta IT")
	assert.Equal(t, "Consultanta IT", first)
	assert.Empty(t, second)

	// split lands on the first space past the target
	first, second = pdf.SplitDescription("Furnizare servicii software pentru luna Martie 2026")
	assert.Equal(t, "Furnizare servicii software", first)
	assert.Equal(t, "pentru luna Martie 2026", second)

	// long single word past the target: nothing to split at
	first, second = pdf.SplitDescription(strings.Repeat("x", 40))
	assert.Equal(t, strings.Repeat("x", 40), first)
	assert.Empty(t, second)
}
