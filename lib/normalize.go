package lib

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

// NormalizeName folds a place name for comparison: accents are stripped,
// surrounding whitespace trimmed and the result lowercased. The wilaya and
// commune datasets were imported separately and disagree on accents
// ("Béjaïa" vs "Bejaia"), so every lookup goes through this fold.
func NormalizeName(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Fold failure leaves the raw string; lookups then only match
		// byte-identical spellings
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// NamesMatch reports whether two place names refer to the same entry once
// folded.
func NamesMatch(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
