package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and removes combining diacritical
// marks, so "é" becomes "e". Letters without a decomposition (ø, æ)
// pass through and are handled by the hyphen collapse below.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts arbitrary display text into a URL-safe, ASCII,
// hyphenated identifier. The result contains only lowercase letters,
// digits and single interior hyphens, and may be empty if the input
// has no alphanumerics after transliteration.
func Slugify(input string) string {
	s := strings.ToLower(input)

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
