// Package search retrieves raw keyword search results from the Google
// News RSS endpoint, for both the news and the blog sections.
package search

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"

	"kdigest/internal/pipeline"
	"kdigest/internal/source"
)

const (
	googleNewsSearchURL = "https://news.google.com/rss/search"
	requestTimeout      = 10 * time.Second
	userAgent           = "kdigest/1.0 (keyword digest)"
)

// defaultExclusions are appended to every query to pre-filter promotional
// results upstream; the ad filter catches what slips through.
var defaultExclusions = []string{"광고", "홍보"}

// DefaultBlogSites are the blog platforms the blog section is restricted
// to when the config does not override them.
var DefaultBlogSites = []string{"tistory.com", "blog.naver.com", "brunch.co.kr"}

// Searcher fetches and decodes one Google News RSS search feed per
// keyword. A Searcher is configured once per section and reused across
// pipeline runs.
type Searcher struct {
	parser     *gofeed.Parser
	exclusions []string
	sites      []string
	freshness  string
	maxItems   int
}

// NewNews returns a Searcher for the news section: a plain keyword query
// with promotional exclusions.
func NewNews(maxItems int) *Searcher {
	return &Searcher{
		parser:     newParser(),
		exclusions: defaultExclusions,
		maxItems:   maxItems,
	}
}

// NewBlogs returns a Searcher restricted to blog platforms and the last
// day of results.
func NewBlogs(sites []string, maxItems int) *Searcher {
	if len(sites) == 0 {
		sites = DefaultBlogSites
	}
	return &Searcher{
		parser:     newParser(),
		exclusions: defaultExclusions,
		sites:      sites,
		freshness:  "when:1d",
		maxItems:   maxItems,
	}
}

func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: requestTimeout}
	p.RSSTranslator = &sourceTranslator{}
	return p
}

// sourceTranslator extends the default RSS translation to carry each
// item's <source> element, which the default translator drops. Google
// News names the publisher there.
type sourceTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return nil, fmt.Errorf("feed did not match expected type of *rss.Feed")
	}

	translated, err := t.DefaultRSSTranslator.Translate(rssFeed)
	if err != nil {
		return nil, err
	}

	for i, item := range rssFeed.Items {
		if i >= len(translated.Items) || item.Source == nil || item.Source.Title == "" {
			continue
		}
		if translated.Items[i].Custom == nil {
			translated.Items[i].Custom = map[string]string{}
		}
		translated.Items[i].Custom["source"] = item.Source.Title
	}
	return translated, nil
}

// FetchItems retrieves the raw items for one keyword. Satisfies
// pipeline.FetchItems.
func (s *Searcher) FetchItems(ctx context.Context, keyword string) ([]pipeline.RawItem, error) {
	feedURL := s.buildURL(keyword)

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing search feed: %w", err)
	}

	var items []pipeline.RawItem
	for _, item := range feed.Items {
		if s.maxItems > 0 && len(items) >= s.maxItems {
			break
		}
		items = append(items, pipeline.RawItem{
			Title:        item.Title,
			Description:  item.Description,
			Link:         item.Link,
			PublishedRaw: item.Published,
			SourceHint:   sourceHintOf(item),
		})
	}

	log.Printf("search: %d items for %q", len(items), keyword)
	return items, nil
}

// buildQuery assembles the search expression: keyword, exclusion terms,
// optional freshness window and site restrictions.
func (s *Searcher) buildQuery(keyword string) string {
	parts := []string{keyword}
	for _, term := range s.exclusions {
		parts = append(parts, "-"+term)
	}
	if s.freshness != "" {
		parts = append(parts, s.freshness)
	}
	for i, site := range s.sites {
		if i > 0 {
			parts = append(parts, "OR")
		}
		parts = append(parts, "site:"+site)
	}
	return strings.Join(parts, " ")
}

func (s *Searcher) buildURL(keyword string) string {
	params := url.Values{
		"q":    {s.buildQuery(keyword)},
		"hl":   {"ko"},
		"gl":   {"KR"},
		"ceid": {"KR:ko"},
	}
	return googleNewsSearchURL + "?" + params.Encode()
}

// sourceHintOf flattens the feed's inconsistently-typed source field
// (element, DublinCore publisher, or absent) into a Hint.
func sourceHintOf(item *gofeed.Item) source.Hint {
	if item.Custom != nil {
		if name := strings.TrimSpace(item.Custom["source"]); name != "" {
			return source.Hint{Name: name}
		}
	}
	if dc := item.DublinCoreExt; dc != nil && len(dc.Publisher) > 0 {
		return source.Hint{Name: strings.TrimSpace(dc.Publisher[0])}
	}
	return source.Hint{}
}
