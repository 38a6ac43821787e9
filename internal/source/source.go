// Package source derives human-readable publisher and blog labels from
// feed metadata, title patterns and link domains.
package source

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind selects which attribution profile applies: news publishers or blog
// platforms. It only changes the fallback label and which heuristics run
// first; the chain itself is shared.
type Kind string

const (
	News Kind = "news"
	Blog Kind = "blog"
)

// Fallback labels when nothing in the chain matches.
const (
	UnknownNewsSource = "알 수 없는 출처"
	UnknownBlogSource = "블로그"
)

// Hint is the normalized structured source field from the upstream feed.
// Feeds deliver it inconsistently (object, plain string, absent), so the
// search layer flattens it to this before attribution.
type Hint struct {
	Name string
}

// HasName reports whether the feed provided an explicit publisher name.
func (h Hint) HasName() bool {
	return strings.TrimSpace(h.Name) != ""
}

// publisherDomains maps known news publisher domains to display names.
var publisherDomains = map[string]string{
	"news.naver.com":   "네이버뉴스",
	"news.daum.net":    "다음뉴스",
	"v.daum.net":       "다음뉴스",
	"news.google.com":  "구글뉴스",
	"yna.co.kr":        "연합뉴스",
	"yonhapnews.co.kr": "연합뉴스",
	"chosun.com":       "조선일보",
	"donga.com":        "동아일보",
	"joongang.co.kr":   "중앙일보",
	"hani.co.kr":       "한겨레",
	"khan.co.kr":       "경향신문",
	"mt.co.kr":         "머니투데이",
	"mk.co.kr":         "매일경제",
	"hankyung.com":     "한국경제",
	"sbs.co.kr":        "SBS",
	"kbs.co.kr":        "KBS",
	"mbc.co.kr":        "MBC",
	"newspim.com":      "뉴스핌",
	"news1.kr":         "뉴스1",
	"pressian.com":     "프레시안",
	"ohmynews.com":     "오마이뉴스",
	"sisain.co.kr":     "시사IN",
	"hankookilbo.com":  "한국일보",
	"seoul.co.kr":      "서울신문",
	"munhwa.com":       "문화일보",
	"dt.co.kr":         "디지털타임스",
	"etnews.com":       "전자신문",
	"zdnet.co.kr":      "ZDNet Korea",
}

const titleTruncateRunes = 30

var (
	sourceSuffix = `(?:저널|뉴스|신문|일보|방송|미디어|타임즈|헤럴드|포스트|투데이|데일리|위클리)`

	titleSourceRe   = regexp.MustCompile(`\s*-\s*([가-힣A-Za-z0-9]+` + sourceSuffix + `)\s*$`)
	bracketSourceRe = regexp.MustCompile(`[\[(]([가-힣A-Za-z0-9]+(?:저널|뉴스|신문|일보|방송|미디어|블로그))[\])]`)

	naverBlogTitleRe = regexp.MustCompile(`\s*[:：]\s*네이버\s*블로그`)
	tistoryTitleRe   = regexp.MustCompile(`\s*-\s*티스토리`)
)

// Attributor resolves source labels for one section kind.
type Attributor struct {
	kind Kind
}

// New returns an Attributor for the given kind.
func New(kind Kind) *Attributor {
	return &Attributor{kind: kind}
}

// Attribute resolves a display label for an item. Priority: structured
// hint, title platform markers, link domain, bracketed name patterns,
// generic fallback. Pure function of its inputs.
func (a *Attributor) Attribute(link, title, description string, hint Hint) string {
	if hint.HasName() {
		if platform := platformLabel(link); platform != "" {
			return hint.Name + " (" + platform + ")"
		}
		return hint.Name
	}

	if a.kind == Blog {
		if s := fromBlogTitle(title); s != "" {
			return s
		}
	}

	// Title markers outrank the domain table: aggregator links
	// (news.google.com) resolve to the aggregator, not the publisher
	// named in the title.
	if a.kind == News {
		if m := titleSourceRe.FindStringSubmatch(title); m != nil {
			return m[1]
		}
		if m := titleSourceRe.FindStringSubmatch(description); m != nil {
			return m[1]
		}
	}

	if s := fromDomain(link); s != "" {
		return s
	}

	if m := bracketSourceRe.FindStringSubmatch(title + " " + description); m != nil {
		return m[1]
	}

	if a.kind == Blog {
		return UnknownBlogSource
	}
	return UnknownNewsSource
}

// platformLabel returns a short platform name when the link's domain is a
// known blog platform, used to annotate structured hints.
func platformLabel(link string) string {
	domain := hostOf(link)
	switch {
	case strings.Contains(domain, "tistory.com"):
		return "티스토리"
	case strings.Contains(domain, "blog.naver.com"):
		return "네이버 블로그"
	case strings.Contains(domain, "brunch.co.kr"):
		return "브런치"
	case strings.Contains(domain, "medium.com"):
		return "미디엄"
	}
	return ""
}

// fromBlogTitle extracts a label from platform markers that Google's feed
// embeds in blog post titles.
func fromBlogTitle(title string) string {
	if title == "" {
		return ""
	}

	if strings.Contains(title, "네이버 블로그") {
		if parts := naverBlogTitleRe.Split(title, 2); len(parts) > 1 && strings.TrimSpace(parts[0]) != "" {
			return truncate(strings.TrimSpace(parts[0])) + "... (네이버 블로그)"
		}
		return "네이버 블로그"
	}

	if strings.Contains(title, "티스토리") {
		if parts := tistoryTitleRe.Split(title, 2); len(parts) > 1 && strings.TrimSpace(parts[0]) != "" {
			return truncate(strings.TrimSpace(parts[0])) + "... (티스토리)"
		}
		return "티스토리"
	}

	if strings.Contains(title, "브런치") || strings.Contains(strings.ToLower(title), "brunch") {
		return "브런치"
	}

	if strings.Contains(strings.ToLower(title), "naver") {
		return "네이버 블로그"
	}

	return ""
}

// fromDomain resolves a label from the link's domain: blog platforms with
// user-id extraction, the publisher table with exact and partial matching,
// then generic news/blog domain keywords.
func fromDomain(link string) string {
	domain := hostOf(link)
	if domain == "" {
		return ""
	}

	path := pathOf(link)

	if strings.Contains(domain, "tistory.com") {
		name := strings.TrimSuffix(strings.TrimPrefix(domain, "www."), ".tistory.com")
		if name != "" && name != "tistory.com" {
			return name + " (티스토리)"
		}
		return "티스토리"
	}

	if strings.Contains(domain, "blog.naver.com") {
		if id := firstPathSegment(path); id != "" {
			return id + " (네이버 블로그)"
		}
		return "네이버 블로그"
	}

	if strings.Contains(domain, "brunch.co.kr") {
		if id := firstPathSegment(path); id != "" {
			return "@" + strings.TrimPrefix(id, "@") + " (브런치)"
		}
		return "브런치"
	}

	if strings.Contains(domain, "medium.com") {
		if id := firstPathSegment(path); strings.HasPrefix(id, "@") {
			return id + " (미디엄)"
		}
		return "미디엄"
	}

	if name, ok := publisherDomains[domain]; ok {
		return name
	}
	for known, name := range publisherDomains {
		if strings.Contains(domain, known) || strings.Contains(known, domain) {
			return name
		}
	}

	bare := strings.TrimPrefix(domain, "www.")
	for _, keyword := range []string{"blog", "diary", "note", "post", "story"} {
		if strings.Contains(bare, keyword) {
			return bare + " (블로그)"
		}
	}

	if main, _, ok := strings.Cut(bare, "."); ok {
		for _, keyword := range []string{"news", "journal", "daily", "times", "herald"} {
			if strings.Contains(main, keyword) {
				return strings.ToUpper(main[:1]) + main[1:]
			}
		}
	}

	return ""
}

func hostOf(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Host)
}

func pathOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Path
}

func firstPathSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= titleTruncateRunes {
		return s
	}
	return string(runes[:titleTruncateRunes])
}
