package domain

import (
	"strings"
	"unicode"
)

// NormalizeText prepares a word for lookups:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses any run of whitespace into one space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(CollapseSpaces(text))
}

// CollapseSpaces trims text and replaces every run of whitespace,
// newlines included, with a single space. Case is preserved.
func CollapseSpaces(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
