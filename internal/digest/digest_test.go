package digest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kdigest/internal/adfilter"
	"kdigest/internal/config"
	"kdigest/internal/database"
	"kdigest/internal/pipeline"
)

func testConfig() *config.Config {
	return &config.Config{
		Keywords: []string{"화성시"},
		Search: config.Search{
			News:  config.Section{MaxResults: 5, HoursBack: 24, AdFilter: "broad"},
			Blogs: config.BlogSection{Section: config.Section{MaxResults: 5, HoursBack: 24, AdFilter: "broad"}},
		},
	}
}

func fakeItems(items []pipeline.RawItem) pipeline.FetchItems {
	return func(ctx context.Context, keyword string) ([]pipeline.RawItem, error) {
		return items, nil
	}
}

func noPageText(ctx context.Context, link string) string { return "" }

func testBuilder(t *testing.T) *Builder {
	t.Helper()

	recent := time.Now().Add(-2 * time.Hour).Format(time.RFC1123Z)
	newsItems := []pipeline.RawItem{{
		Title:        "화성시 동탄 개발 소식 - 조선일보",
		Description:  "동탄 신도시 개발이 계속 진행되고 있으며 교통 기반 시설도 함께 확충됩니다.",
		Link:         "https://news.example.com/1",
		PublishedRaw: recent,
	}}
	blogItems := []pipeline.RawItem{{
		Title:        "화성시 맛집 탐방 후기",
		Description:  "화성시에서 방문했던 식당들의 후기를 정리한 글입니다. 분위기와 맛 모두 만족스러웠습니다.",
		Link:         "https://myblog.tistory.com/123",
		PublishedRaw: recent,
	}}

	news := pipeline.New(pipeline.NewsProfile(adfilter.ModeBroad), fakeItems(newsItems), noPageText)
	blogs := pipeline.New(pipeline.BlogProfile(adfilter.ModeBroad), fakeItems(blogItems), noPageText)

	b := NewBuilder(testConfig(), news, blogs, nil, nil)
	b.now = func() time.Time {
		return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return b
}

func TestBuildAssemblesSections(t *testing.T) {
	b := testBuilder(t)
	d := b.Build(context.Background())

	if d.RunDate != "2024-01-15" {
		t.Errorf("RunDate = %q", d.RunDate)
	}
	if !strings.Contains(d.Subject, "2024-01-15") {
		t.Errorf("Subject = %q, want run date included", d.Subject)
	}
	if len(d.News) != 1 || len(d.Blogs) != 1 {
		t.Fatalf("sections = %d news, %d blogs, want 1 each", len(d.News), len(d.Blogs))
	}
	if len(d.News[0].Records) != 1 {
		t.Fatalf("news records = %d, want 1", len(d.News[0].Records))
	}
	if d.ItemCount() != 2 {
		t.Errorf("ItemCount() = %d, want 2", d.ItemCount())
	}
}

func TestBuildBodies(t *testing.T) {
	b := testBuilder(t)
	d := b.Build(context.Background())

	if !strings.Contains(d.BodyText, `"화성시" 관련 최신 뉴스`) {
		t.Errorf("BodyText missing news header:\n%s", d.BodyText)
	}
	if !strings.Contains(d.BodyText, `"화성시" 관련 최신 블로그`) {
		t.Errorf("BodyText missing blog header:\n%s", d.BodyText)
	}
	if !strings.Contains(d.BodyHTML, "<html><body>") || !strings.Contains(d.BodyHTML, "</body></html>") {
		t.Errorf("BodyHTML not a full document:\n%s", d.BodyHTML)
	}
	if !strings.Contains(d.BodyMarkdown, "# 2024-01-15 키워드 다이제스트") {
		t.Errorf("BodyMarkdown missing heading:\n%s", d.BodyMarkdown)
	}

	// Weather and network are disabled; their blocks must be absent.
	if strings.Contains(d.BodyText, "날씨 정보") || strings.Contains(d.BodyText, "네트워크 정보") {
		t.Errorf("BodyText contains disabled blocks:\n%s", d.BodyText)
	}
}

func TestBuildAttributesBlogSource(t *testing.T) {
	b := testBuilder(t)
	d := b.Build(context.Background())

	rec := d.Blogs[0].Records[0]
	if !strings.Contains(rec.Source, "myblog") || !strings.Contains(rec.Source, "티스토리") {
		t.Errorf("blog source = %q, want tistory attribution", rec.Source)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer db.Close()

	b := testBuilder(t)
	d := b.Build(context.Background())

	if err := Store(db, d); err != nil {
		t.Fatalf("Store: %v", err)
	}

	stored, err := db.GetDigest("2024-01-15")
	if err != nil {
		t.Fatalf("GetDigest: %v", err)
	}
	if stored == nil {
		t.Fatal("expected stored digest")
	}
	if stored.ItemCount != 2 {
		t.Errorf("stored item count = %d, want 2", stored.ItemCount)
	}

	items, err := db.GetDigestItems(stored.ID)
	if err != nil {
		t.Fatalf("GetDigestItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("stored items = %d, want 2", len(items))
	}
	if items[0].Section != "news" || items[1].Section != "blog" {
		t.Errorf("sections = %q, %q, want news then blog", items[0].Section, items[1].Section)
	}
	if items[0].Keyword != "화성시" {
		t.Errorf("keyword = %q", items[0].Keyword)
	}
}
