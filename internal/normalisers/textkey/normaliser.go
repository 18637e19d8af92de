// Package textkey canonicalises free text into comparison keys.
//
// Keys are lower-cased without locale tailoring, stripped of diacritics and
// punctuation, and whitespace-collapsed. Two phrasings that differ only in
// case, accents or punctuation produce the same key.
package textkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalise returns the comparison key for text.
// It never fails; empty input yields an empty key.
// Normalise(Normalise(s)) == Normalise(s) for every s.
func Normalise(text string) string {
	if text == "" {
		return ""
	}

	// Casers and transform chains are stateful, so each call builds its own.
	lowered := cases.Lower(language.Und).String(text)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		folded = lowered
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case isKeyRune(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
		// Anything else is punctuation or a symbol and is dropped in place.
	}
	return b.String()
}

// Keywords splits the key of text on whitespace and keeps words longer
// than minLen runes.
func Keywords(text string, minLen int) []string {
	fields := strings.Fields(Normalise(text))
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > minLen {
			out = append(out, f)
		}
	}
	return out
}

func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
