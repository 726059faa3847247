package normalize

import (
	"strings"
	"unicode"
)

// Plain ASCII case folding corrupts Turkish text: upper("i") must be "İ" and
// lower("I") must be "ı". Personnel and city lookups throughout the pipeline
// depend on these rules.

var trUpperMap = map[rune]rune{
	'i': 'İ', 'ı': 'I', 'ğ': 'Ğ', 'ü': 'Ü',
	'ş': 'Ş', 'ö': 'Ö', 'ç': 'Ç',
}

var trLowerMap = map[rune]rune{
	'İ': 'i', 'I': 'ı', 'Ğ': 'ğ', 'Ü': 'ü',
	'Ş': 'ş', 'Ö': 'ö', 'Ç': 'ç',
}

// UpperTurkish upper-cases text using Turkish dotted/dotless I rules.
func UpperTurkish(text string) string {
	return strings.Map(func(r rune) rune {
		if u, ok := trUpperMap[r]; ok {
			return u
		}
		return unicode.ToUpper(r)
	}, text)
}

// LowerTurkish lower-cases text using Turkish dotted/dotless I rules.
func LowerTurkish(text string) string {
	return strings.Map(func(r rune) rune {
		if l, ok := trLowerMap[r]; ok {
			return l
		}
		return unicode.ToLower(r)
	}, text)
}

// PersonName canonicalizes a free-text personnel name: trim, collapse runs
// of whitespace, Turkish upper-case. Spreadsheet exports sometimes carry a
// literal "nan" cell, which reads as empty.
func PersonName(text string) string {
	s := UpperTurkish(strings.TrimSpace(text))
	s = strings.Join(strings.Fields(s), " ")
	if s == "NAN" {
		return ""
	}
	return s
}
