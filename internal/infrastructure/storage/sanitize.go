package storage

import (
	"strings"
	"unicode"
)

// SanitizeKeyword turns free text into a safe filename fragment: every run
// of non-alphanumeric characters becomes a single underscore, the result is
// lower-cased and trimmed of leading/trailing underscores.
func SanitizeKeyword(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
