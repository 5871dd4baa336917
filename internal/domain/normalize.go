package domain

import "strings"

// NormalizeText prepares target text for storage and lookup:
//   - trims leading/trailing whitespace
//   - lowercases (a no-op for unicased scripts)
//   - compresses runs of spaces into one
//
// Diacritics, hyphens, apostrophes, and non-Latin scripts are preserved.
func NormalizeText(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}

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
