// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters that survive NFKD decomposition unchanged.
var transliterations = map[rune]string{
	'đ': "d",
	'ð': "d",
	'ß': "ss",
	'æ': "ae",
	'ø': "o",
	'ł': "l",
	'œ': "oe",
	'þ': "th",
}

// Make lowercases name, folds it to ASCII and joins the remaining
// alphanumeric runs with single hyphens. The result is stable for a given
// name, so two names collide exactly when their slugs are equal.
func Make(name string) string {
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	gap := false
	emit := func(s string) {
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteString(s)
	}

	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(string(r))
		default:
			if t, ok := transliterations[r]; ok {
				emit(t)
				continue
			}
			gap = true
		}
	}
	return b.String()
}
