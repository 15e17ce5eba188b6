// Package fuzzy provides the text normalization and 0-100 similarity scores
// used by the resolvers to pick the closest reference row.
package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and keeps only ASCII letters, digits, whitespace and
// hyphens. Accented letters are folded to their base letter first, so "Şêrwan"
// and "serwan" compare equal.
func Normalize(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ContainsAny reports whether s contains any of the given substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
