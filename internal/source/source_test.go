package source

import (
	"strings"
	"testing"
)

func TestStructuredHintWins(t *testing.T) {
	a := New(News)
	got := a.Attribute("https://www.chosun.com/a/1", "아무 제목", "", Hint{Name: "연합뉴스"})
	if got != "연합뉴스" {
		t.Errorf("Attribute = %q, want hint name", got)
	}
}

func TestStructuredHintAnnotatedWithPlatform(t *testing.T) {
	a := New(Blog)
	got := a.Attribute("https://myblog.tistory.com/123", "제목", "", Hint{Name: "개발 일기"})
	if got != "개발 일기 (티스토리)" {
		t.Errorf("Attribute = %q, want annotated hint", got)
	}
}

func TestTistoryDomain(t *testing.T) {
	a := New(Blog)
	got := a.Attribute("https://myblog.tistory.com/123", "", "", Hint{})
	if !strings.Contains(got, "myblog") || !strings.Contains(got, "티스토리") {
		t.Errorf("Attribute = %q, want user id and platform label", got)
	}
}

func TestNaverBlogPathUser(t *testing.T) {
	a := New(Blog)
	got := a.Attribute("https://blog.naver.com/devkim/223344", "", "", Hint{})
	if got != "devkim (네이버 블로그)" {
		t.Errorf("Attribute = %q", got)
	}
}

func TestBrunchAndMediumUsers(t *testing.T) {
	a := New(Blog)
	if got := a.Attribute("https://brunch.co.kr/@writer/55", "", "", Hint{}); got != "@writer (브런치)" {
		t.Errorf("brunch Attribute = %q", got)
	}
	if got := a.Attribute("https://medium.com/@gopher/post-1", "", "", Hint{}); got != "@gopher (미디엄)" {
		t.Errorf("medium Attribute = %q", got)
	}
}

func TestBlogTitleMarker(t *testing.T) {
	a := New(Blog)
	got := a.Attribute("", "오늘의 요리 기록 : 네이버 블로그 - NAVER", "", Hint{})
	if !strings.HasPrefix(got, "오늘의 요리 기록") || !strings.Contains(got, "네이버 블로그") {
		t.Errorf("Attribute = %q", got)
	}
}

func TestPublisherDomainTable(t *testing.T) {
	a := New(News)
	cases := map[string]string{
		"https://www.yna.co.kr/view/AKR2024":  "연합뉴스",
		"https://news.naver.com/article/123":  "네이버뉴스",
		"https://v.daum.net/v/2024":           "다음뉴스",
		"https://www.etnews.com/202401150001": "전자신문",
	}
	for link, want := range cases {
		if got := a.Attribute(link, "", "", Hint{}); got != want {
			t.Errorf("Attribute(%s) = %q, want %q", link, got, want)
		}
	}
}

func TestTitleTrailingSourcePattern(t *testing.T) {
	a := New(News)
	got := a.Attribute("https://example.com/a", "시 승격 기념행사 개최 - 화성저널", "", Hint{})
	if got != "화성저널" {
		t.Errorf("Attribute = %q, want 화성저널", got)
	}
}

func TestTitleSourceOutranksAggregatorDomain(t *testing.T) {
	a := New(News)
	got := a.Attribute("https://news.google.com/rss/articles/abc123", "삼성전자 반도체 실적 발표 - 연합뉴스", "", Hint{})
	if got != "연합뉴스" {
		t.Errorf("Attribute = %q, want publisher from title, not aggregator", got)
	}
}

func TestBracketSourcePattern(t *testing.T) {
	a := New(News)
	got := a.Attribute("https://example.com/a", "[데일리뉴스] 오늘의 주요 소식", "", Hint{})
	if got != "데일리뉴스" {
		t.Errorf("Attribute = %q, want 데일리뉴스", got)
	}
}

func TestFallbackLabels(t *testing.T) {
	if got := New(News).Attribute("https://example.com/x", "제목", "설명", Hint{}); got != UnknownNewsSource {
		t.Errorf("news fallback = %q", got)
	}
	if got := New(Blog).Attribute("https://example.com/x", "제목", "설명", Hint{}); got != UnknownBlogSource {
		t.Errorf("blog fallback = %q", got)
	}
}

func TestAttributeIsPure(t *testing.T) {
	a := New(Blog)
	first := a.Attribute("https://myblog.tistory.com/123", "제목", "설명", Hint{})
	for i := 0; i < 3; i++ {
		if got := a.Attribute("https://myblog.tistory.com/123", "제목", "설명", Hint{}); got != first {
			t.Fatalf("Attribute not idempotent: %q vs %q", got, first)
		}
	}
}
