// Package textnorm folds text to a lower-case, accent-free form so catalog
// names and search terms compare the way a human expects ("Notícias" matches
// "noticias"). Panels mix locales freely; every name-vs-name comparison in
// the prober goes through Fold first.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips combining marks. Transformers carry state,
// so the chain is built per call rather than shared.
func Fold(s string) string {
	s = strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ContainsFold reports whether the folded form of s contains the folded form
// of substr. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}
