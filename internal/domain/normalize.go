package domain

import "strings"

// NormalizeKey prepares a source word or candidate for use as a map key:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved, so "Läufer" and
// "läufer" collapse to the same key while staying distinct from "laufer".
func NormalizeKey(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WordCount returns the number of whitespace-separated words in s.
// Used by the ranking tie-break that prefers shorter candidates.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
