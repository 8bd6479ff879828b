package nfecore

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanString prepares free text for a SEFAZ document: control characters
// become spaces, runs of whitespace collapse to one space and the result is
// trimmed. Accents are kept. XML escaping is left to the encoder.
func CleanString(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// ToASCII strips diacritics ("ação" becomes "acao") and drops any rune that
// still falls outside ASCII.
func ToASCII(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
