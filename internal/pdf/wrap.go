package pdf

import (
	"strings"
)

const (
	// approximate glyph metrics for width estimation, in mm per point
	pointToMM      = 0.3528
	avgGlyphFactor = 0.5
)

// charsPerLine estimates how many characters of the given font size fit in
// a column of the given width (mm).
func charsPerLine(width, fontSize float64) int {
	glyphWidth := fontSize * pointToMM * avgGlyphFactor
	if glyphWidth <= 0 {
		return 1
	}
	n := int(width / glyphWidth)
	if n < 1 {
		return 1
	}
	return n
}

// wrapText wraps text at word boundaries so that no line exceeds maxChars.
// Words are never split: a single word wider than the line is placed alone
// on its own line. Whitespace runs collapse to single spaces.
func wrapText(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) <= maxChars {
			current += " " + word
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
