// Package summary builds bounded-length descriptive summaries for digest
// records. Three tiers: relevance-ranked sentences from fetched page text,
// a cleaned feed description, then a fixed placeholder.
package summary

import (
	"regexp"
	"sort"
	"strings"

	"kdigest/internal/textutil"
)

const (
	maxSummaryRunes = 150
	minPageText     = 50
	minSentence     = 20
	maxSentence     = 200

	// Description similarity above this echoes the headline and is
	// rejected; content summaries above redundancyThreshold retry with the
	// next-ranked sentences.
	echoThreshold       = 0.8
	redundancyThreshold = 0.7
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]`)
	digitsOnlyRe    = regexp.MustCompile(`^[\d\s\-()]+$`)
	koreanTokenRe   = regexp.MustCompile(`[가-힣]{2,}`)

	urlRe        = regexp.MustCompile(`https?://\S+`)
	wwwRe        = regexp.MustCompile(`www\.\S+`)
	bareDomainRe = regexp.MustCompile(`[a-zA-Z0-9.-]+\.(com|net|co\.kr|org)\b`)
	shortLinkRe  = regexp.MustCompile(`v\.[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Profile carries the section-specific vocabulary: boilerplate markers for
// sentence filtering, the trailing source pattern stripped from
// descriptions, and the fallback strings.
type Profile struct {
	BoilerplatePrefixes []string
	BoilerplateSuffixes []string
	ExcludedWords       []string
	trailingSourceRe    *regexp.Regexp
	ReadMore            string
}

// NewsProfile matches news articles: byline/photo-credit markers and
// publisher suffixes.
func NewsProfile() Profile {
	return Profile{
		BoilerplatePrefixes: []string{"기자", "사진", "영상", "출처", "저작권", "▲", "■", "※", "이메일"},
		BoilerplateSuffixes: []string{"기자", "제공", "=연합뉴스"},
		ExcludedWords:       []string{"광고", "홍보", "copyright"},
		trailingSourceRe:    regexp.MustCompile(`\s*-\s*[가-힣A-Za-z0-9]+(?:저널|뉴스|신문|일보|방송|미디어|닷컴)?\s*$`),
		ReadMore:            "기사 본문에서 상세 내용을 확인하세요.",
	}
}

// BlogProfile matches blog posts: image-credit markers and platform
// suffixes.
func BlogProfile() Profile {
	return Profile{
		BoilerplatePrefixes: []string{"사진", "이미지", "출처", "©"},
		ExcludedWords:       []string{"광고", "홍보"},
		trailingSourceRe:    regexp.MustCompile(`\s*-\s*[가-힣A-Za-z0-9]+(?:블로그|BLOG|Blog)?\s*$`),
		ReadMore:            "블로그 본문에서 상세 내용을 확인하세요.",
	}
}

// Summarizer produces summaries for one section profile.
type Summarizer struct {
	profile Profile
}

// New returns a Summarizer for the given profile.
func New(profile Profile) *Summarizer {
	return &Summarizer{profile: profile}
}

// Summarize returns a non-empty summary of at most 150 runes. Page text is
// preferred, then the feed description, then the profile placeholder.
func (s *Summarizer) Summarize(title, pageText, description string) string {
	if len([]rune(strings.TrimSpace(pageText))) > minPageText {
		if sum := s.fromContent(title, pageText); sum != "" {
			return sum
		}
	}

	if description != "" {
		cleaned := s.CleanDescription(description)
		if cleaned != s.profile.ReadMore &&
			textutil.Jaccard(textutil.NormalizeForComparison(title), textutil.NormalizeForComparison(cleaned)) < echoThreshold {
			return cleaned
		}
	}

	return s.profile.ReadMore
}

type scoredSentence struct {
	text  string
	score int
}

// fromContent extracts the two sentences most relevant to the title.
// Relevance is the raw count of shared 2+-rune Hangul tokens, no length
// normalization.
func (s *Summarizer) fromContent(title, content string) string {
	titleTokens := tokenSet(title)

	var candidates []scoredSentence
	for _, raw := range sentenceSplitRe.Split(content, -1) {
		sentence := strings.TrimSpace(raw)
		if !s.keepSentence(sentence) {
			continue
		}

		score := 0
		for token := range tokenSet(sentence) {
			if _, ok := titleTokens[token]; ok {
				score++
			}
		}
		candidates = append(candidates, scoredSentence{text: sentence, score: score})
	}

	if len(candidates) == 0 {
		return ""
	}

	// Stable: ties keep original sentence order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	summary := joinSentences(candidates[:min(2, len(candidates))])

	// Too redundant with the headline: retry with the next-ranked pair.
	if textutil.Jaccard(textutil.NormalizeForComparison(title), textutil.NormalizeForComparison(summary)) > redundancyThreshold &&
		len(candidates) > 2 {
		summary = joinSentences(candidates[1:3])
	}

	runes := []rune(summary)
	if len(runes) > maxSummaryRunes {
		return string(runes[:maxSummaryRunes-3]) + "..."
	}
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

func (s *Summarizer) keepSentence(sentence string) bool {
	n := len([]rune(sentence))
	if n <= minSentence || n >= maxSentence {
		return false
	}
	for _, prefix := range s.profile.BoilerplatePrefixes {
		if strings.HasPrefix(sentence, prefix) {
			return false
		}
	}
	for _, suffix := range s.profile.BoilerplateSuffixes {
		if strings.HasSuffix(sentence, suffix) {
			return false
		}
	}
	if digitsOnlyRe.MatchString(sentence) {
		return false
	}
	lower := strings.ToLower(sentence)
	for _, word := range s.profile.ExcludedWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// CleanDescription strips markup, trailing source credits and URLs from a
// feed description and caps it at 150 runes, preferring a sentence
// boundary. Returns the profile's read-more line when nothing usable
// remains.
func (s *Summarizer) CleanDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return s.profile.ReadMore
	}

	clean := textutil.StripMarkup(description)
	clean = s.profile.trailingSourceRe.ReplaceAllString(clean, "")
	clean = urlRe.ReplaceAllString(clean, "")
	clean = wwwRe.ReplaceAllString(clean, "")
	clean = shortLinkRe.ReplaceAllString(clean, "")
	clean = bareDomainRe.ReplaceAllString(clean, "")
	clean = strings.Join(strings.Fields(clean), " ")

	if len([]rune(clean)) < minSentence {
		return s.profile.ReadMore
	}

	if runes := []rune(clean); len(runes) > maxSummaryRunes {
		if first, _, ok := strings.Cut(clean, ". "); ok {
			clean = first + "."
		}
		if runes := []rune(clean); len(runes) > maxSummaryRunes {
			clean = string(runes[:maxSummaryRunes-3]) + "..."
		}
	}

	return clean
}

func joinSentences(sentences []scoredSentence) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = s.text
	}
	return strings.Join(parts, ". ")
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range koreanTokenRe.FindAllString(text, -1) {
		set[token] = struct{}{}
	}
	return set
}
