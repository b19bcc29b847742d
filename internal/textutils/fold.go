// Package textutils provides the case-insensitive text matching used by the
// filters and the sales cards.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the trimmed, NFC-normalized, case-folded form of s. Folding is
// accent-sensitive: "Balcão" and "balcão" match, "balcao" does not.
func Fold(s string) string {
	// cases.Caser is stateful, so one per call
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// EqualFold reports whether a and b are equal after Fold.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// StripAccents removes combining marks ("Descrição" -> "Descricao"). Used for
// lenient header matching only.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// HeaderKey is the key used to match upload headers: folded and accent-free,
// with internal whitespace collapsed.
func HeaderKey(s string) string {
	return strings.Join(strings.Fields(StripAccents(Fold(s))), " ")
}
