package fetch

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return doc
}

// filler pads test bodies past the minimum usable length.
func filler(n int) string {
	return strings.Repeat("내용 ", n)
}

func TestExtractNaverNewsContainer(t *testing.T) {
	e := New(NewsProfile(), 0)
	html := `<html><body>
		<nav>메뉴 목록</nav>
		<div id="dic_area">서울시는 오늘 새로운 교통 정책을 발표했다. ` + filler(50) + `</div>
	</body></html>`

	got := e.extract(mustDoc(t, html))
	if !strings.Contains(got, "새로운 교통 정책") {
		t.Errorf("extract() = %q, want article body", got)
	}
	if strings.Contains(got, "메뉴 목록") {
		t.Errorf("extract() = %q, navigation chrome should be stripped", got)
	}
}

func TestExtractScrubsReporterBylines(t *testing.T) {
	e := New(NewsProfile(), 0)
	html := `<div id="dic_area">김철수 기자 정부가 내년 예산안을 확정했다고 밝혔다. ` + filler(50) + `</div>`

	got := e.extract(mustDoc(t, html))
	if strings.Contains(got, "기자") {
		t.Errorf("extract() = %q, byline should be scrubbed", got)
	}
	if !strings.Contains(got, "예산안을 확정했다") {
		t.Errorf("extract() = %q, body text lost during scrub", got)
	}
}

func TestExtractParagraphFallback(t *testing.T) {
	e := New(NewsProfile(), 0)
	html := `<html><body>
		<p>사진 = 연합뉴스 자료사진을 함께 제공합니다</p>
		<p>첫 번째 문단은 기사의 핵심 내용을 담고 있으며 충분히 길어야 한다. ` + filler(20) + `</p>
		<p>짧은 문단</p>
		<p>두 번째 문단도 의미있는 기사 내용을 담고 있는 문단이다. ` + filler(20) + `</p>
	</body></html>`

	got := e.extract(mustDoc(t, html))
	if !strings.Contains(got, "첫 번째 문단") || !strings.Contains(got, "두 번째 문단") {
		t.Errorf("extract() = %q, want both body paragraphs", got)
	}
	if strings.Contains(got, "자료사진") {
		t.Errorf("extract() = %q, photo-credit paragraph should be dropped", got)
	}
	if strings.Contains(got, "짧은 문단") {
		t.Errorf("extract() = %q, short paragraph should be dropped", got)
	}
}

func TestExtractCapsLength(t *testing.T) {
	e := New(BlogProfile(), 0)
	html := `<div class="entry-content">` + filler(400) + `</div>`

	got := e.extract(mustDoc(t, html))
	if n := len([]rune(got)); n > maxContentRunes {
		t.Errorf("extract() returned %d runes, cap is %d", n, maxContentRunes)
	}
}

func TestExtractNaverBlogContainer(t *testing.T) {
	e := New(BlogProfile(), 0)
	html := `<div class="se-main-container">오늘은 직접 만든 파스타 레시피를 공유합니다. ` + filler(50) + `</div>`

	got := e.extract(mustDoc(t, html))
	if !strings.Contains(got, "파스타 레시피") {
		t.Errorf("extract() = %q, want blog body", got)
	}
}

func TestExtractRejectsThinPages(t *testing.T) {
	e := New(NewsProfile(), 0)
	html := `<div id="dic_area">한 줄짜리 내용</div>`

	if got := e.extract(mustDoc(t, html)); got != "" {
		t.Errorf("extract() = %q, want empty for thin content", got)
	}
}
