// Package textutil provides the text normalization and similarity
// primitives shared by deduplication and summarization.
package textutil

import (
	"strings"
	"unicode"
)

// StripMarkup removes tag-like sequences and common HTML entities from
// feed-provided text and collapses whitespace runs to single spaces.
func StripMarkup(text string) string {
	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
			b.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	s := b.String()
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")
	s = strings.ReplaceAll(s, "&middot;", "·")

	return strings.Join(strings.Fields(s), " ")
}

// NormalizeForComparison canonicalizes text for similarity checks: word
// characters and Hangul are kept, everything else becomes a word boundary,
// whitespace is collapsed and the result is lowercased. Never used for
// display.
func NormalizeForComparison(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// Jaccard returns the token-set Jaccard similarity of two normalized
// strings. Two empty strings are defined as identical (1.0).
func Jaccard(a, b string) float64 {
	wordsA := tokenSet(a)
	wordsB := tokenSet(b)

	if len(wordsA) == 0 && len(wordsB) == 0 {
		return 1.0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// DuplicateThreshold is the Jaccard similarity above which two normalized
// titles are considered the same story.
const DuplicateThreshold = 0.5

// IsDuplicate reports whether the normalized candidate title is similar to
// any previously accepted title. Linear scan; batches are small.
func IsDuplicate(normalized string, seen []string) bool {
	for _, s := range seen {
		if Jaccard(normalized, s) > DuplicateThreshold {
			return true
		}
	}
	return false
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
