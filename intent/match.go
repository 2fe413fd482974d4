package intent

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalize lowercases text and collapses whitespace runs to single spaces.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// containsTerm reports whether term occurs in text as a whole word or
// phrase. Both must already be normalized. Only term edges that are letters
// or digits need a boundary, so "c++" matches "c++," and "go" does not
// match "google".
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)

	for offset := 0; offset <= len(text)-len(term); {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)

		okStart := !isWordRune(first) || start == 0 || !isWordRune(lastRune(text[:start]))
		okEnd := !isWordRune(last) || end == len(text) || !isWordRune(firstRune(text[end:]))
		if okStart && okEnd {
			return true
		}
		offset = start + 1
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if containsTerm(text, t) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
