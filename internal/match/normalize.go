package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes to NFD, removes combining marks, and
// recomposes, so "Küche" and "Kuche" normalise to the same token.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeToken canonicalises a raw token for alias lookup and similarity:
// trim, lowercase, strip diacritics, then drop everything that is not a
// letter or digit (spaces, underscores, hyphens, punctuation). CJK text
// passes through untouched, so "living_room", "Living Room" and "客厅"
// keep their identity across spellings.
//
// An empty result means the input carried no comparable content.
func NormalizeToken(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
