// Package pipeline turns raw feed items into a deduplicated, filtered,
// summarized and recency-sorted list of digest records.
package pipeline

import (
	"context"
	"log"
	"sort"
	"time"

	"kdigest/internal/adfilter"
	"kdigest/internal/dates"
	"kdigest/internal/source"
	"kdigest/internal/summary"
	"kdigest/internal/textutil"
)

// RawItem is an unprocessed feed/search result supplied by a fetch
// collaborator. Title and Description may contain markup.
type RawItem struct {
	Title        string
	Description  string
	Link         string
	PublishedRaw string
	SourceHint   source.Hint
}

// Record is a finalized, displayable digest entry. Immutable once
// produced.
type Record struct {
	Title            string
	Summary          string
	Source           string
	Link             string
	PublishedDisplay string

	// Sort keys, not exposed to renderers.
	publishedAt time.Time
	hasTime     bool
}

// FetchItems retrieves the raw items for a keyword. Returning an error or
// an empty slice triggers the synthetic failure record.
type FetchItems func(ctx context.Context, keyword string) ([]RawItem, error)

// FetchPageText retrieves extracted page text for one item link,
// best-effort: any failure is an empty string.
type FetchPageText func(ctx context.Context, link string) string

// Options bound a single pipeline run.
type Options struct {
	MaxResults int
	HoursBack  int
}

// Profile binds the section-specific collaborators and failure wording.
type Profile struct {
	Name           string
	Attributor     *source.Attributor
	Summarizer     *summary.Summarizer
	AdFilter       *adfilter.Detector
	FailureTitle   string // appended to the keyword
	FailureSummary string
	FailureSource  string
}

// NewsProfile is the news-section pipeline profile.
func NewsProfile(adMode adfilter.Mode) Profile {
	return Profile{
		Name:           "news",
		Attributor:     source.New(source.News),
		Summarizer:     summary.New(summary.NewsProfile()),
		AdFilter:       adfilter.New(adMode),
		FailureTitle:   "뉴스 검색 실패",
		FailureSummary: "네트워크 문제나 API 서비스 장애로 뉴스를 가져올 수 없습니다.",
		FailureSource:  "시스템 오류",
	}
}

// BlogProfile is the blog-section pipeline profile.
func BlogProfile(adMode adfilter.Mode) Profile {
	return Profile{
		Name:           "blog",
		Attributor:     source.New(source.Blog),
		Summarizer:     summary.New(summary.BlogProfile()),
		AdFilter:       adfilter.New(adMode),
		FailureTitle:   "블로그 검색 실패",
		FailureSummary: "네트워크 문제나 API 서비스 장애로 블로그 글을 가져올 수 없습니다.",
		FailureSource:  "시스템 오류",
	}
}

// Pipeline runs the content pipeline for one section. All state (seen
// titles, accumulated records) is scoped to a single Run call.
type Pipeline struct {
	profile       Profile
	fetchItems    FetchItems
	fetchPageText FetchPageText
	now           func() time.Time
}

// New creates a Pipeline from a profile and its fetch collaborators.
func New(profile Profile, fetchItems FetchItems, fetchPageText FetchPageText) *Pipeline {
	return &Pipeline{
		profile:       profile,
		fetchItems:    fetchItems,
		fetchPageText: fetchPageText,
		now:           time.Now,
	}
}

// Run executes the pipeline for a keyword. It never returns an error: any
// upstream failure degrades to a single synthetic failure record, and
// per-item enrichment failures degrade that item's summary only. Context
// cancellation stops item processing early and returns what was
// accumulated.
func (p *Pipeline) Run(ctx context.Context, keyword string, opts Options) []Record {
	items, err := p.fetchItems(ctx, keyword)
	if err != nil || len(items) == 0 {
		if err != nil {
			log.Printf("[%s] search failed for %q: %v", p.profile.Name, keyword, err)
		} else {
			log.Printf("[%s] search returned no items for %q", p.profile.Name, keyword)
		}
		return []Record{p.failureRecord(keyword)}
	}

	cutoff := p.now().In(dates.KST).Add(-time.Duration(opts.HoursBack) * time.Hour)

	var accepted []Record
	var seenTitles []string

	for _, item := range items {
		if ctx.Err() != nil {
			log.Printf("[%s] deadline reached, returning %d records", p.profile.Name, len(accepted))
			break
		}

		title := textutil.StripMarkup(item.Title)
		if title == "" {
			continue
		}

		normalized := textutil.NormalizeForComparison(title)
		if textutil.IsDuplicate(normalized, seenTitles) {
			log.Printf("[%s] duplicate skipped: %s", p.profile.Name, title)
			continue
		}

		description := textutil.StripMarkup(item.Description)
		if p.profile.AdFilter.IsPromotional(title, description) {
			log.Printf("[%s] promotional skipped: %s", p.profile.Name, title)
			continue
		}

		publishedAt, hasTime := dates.Parse(item.PublishedRaw)
		if hasTime && publishedAt.Before(cutoff) {
			continue
		}

		sourceLabel := p.profile.Attributor.Attribute(item.Link, title, description, item.SourceHint)

		pageText := ""
		if item.Link != "" {
			pageText = p.fetchPageText(ctx, item.Link)
		}

		accepted = append(accepted, Record{
			Title:            title,
			Summary:          p.profile.Summarizer.Summarize(title, pageText, description),
			Source:           sourceLabel,
			Link:             item.Link,
			PublishedDisplay: dates.FormatDisplay(publishedAt, hasTime),
			publishedAt:      publishedAt,
			hasTime:          hasTime,
		})
		seenTitles = append(seenTitles, normalized)

		if len(accepted) >= opts.MaxResults {
			break
		}
	}

	// Newest first; records without a resolvable date sort as oldest.
	sort.SliceStable(accepted, func(i, j int) bool {
		if accepted[i].hasTime != accepted[j].hasTime {
			return accepted[i].hasTime
		}
		return accepted[i].publishedAt.After(accepted[j].publishedAt)
	})

	if len(accepted) > opts.MaxResults {
		accepted = accepted[:opts.MaxResults]
	}
	return accepted
}

func (p *Pipeline) failureRecord(keyword string) Record {
	now := p.now().In(dates.KST)
	return Record{
		Title:            keyword + " " + p.profile.FailureTitle,
		Summary:          p.profile.FailureSummary,
		Source:           p.profile.FailureSource,
		Link:             "",
		PublishedDisplay: dates.FormatDisplay(now, true),
		publishedAt:      now,
		hasTime:          true,
	}
}
