// Package dictionary builds the per-snapshot entity dictionary: normalized
// player name forms, team alias scanning and the tiered name matcher.
package dictionary

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize folds a name to its matchable form: decompose, strip combining
// marks, lowercase, collapse whitespace. "João Félix" and "joao felix"
// normalize identically, and the function is idempotent.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Tokens splits a normalized string into its words.
func Tokens(s string) []string {
	return strings.Fields(s)
}
