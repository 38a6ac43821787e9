package render

import (
	"strings"
	"testing"

	"kdigest/internal/pipeline"
)

var sampleRecords = []pipeline.Record{
	{
		Title:            "서울시 새 교통 정책 발표",
		Summary:          "서울시가 대중교통 요금 체계를 개편한다.",
		Source:           "연합뉴스",
		Link:             "https://news.example.com/1",
		PublishedDisplay: "2024-01-15 10:30",
	},
	{
		Title:            "시스템 점검 안내",
		Summary:          "요약 없음",
		Source:           "시스템 오류",
		PublishedDisplay: "시간 정보 없음",
	},
}

func TestTextRendersNumberedEntries(t *testing.T) {
	got := Text(sampleRecords, "교통", News)

	for _, want := range []string{
		`"교통" 관련 최신 뉴스 (2건):`,
		"1. 서울시 새 교통 정책 발표",
		"   요약: 서울시가 대중교통 요금 체계를 개편한다.",
		"   출처: 연합뉴스",
		"   등록: 2024-01-15 10:30",
		"   링크: https://news.example.com/1",
		"2. 시스템 점검 안내",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q in:\n%s", want, got)
		}
	}
}

func TestTextOmitsBlankLink(t *testing.T) {
	got := Text(sampleRecords[1:], "교통", News)
	if strings.Contains(got, "링크:") {
		t.Errorf("Text() rendered a link line for a record without one:\n%s", got)
	}
}

func TestTextEmpty(t *testing.T) {
	got := Text(nil, "교통", Blogs)
	if !strings.Contains(got, `"교통" 관련 최신 블로그:`) || !strings.Contains(got, "검색 결과가 없습니다.") {
		t.Errorf("Text() empty form wrong:\n%s", got)
	}
	if strings.Contains(got, "(0건)") {
		t.Errorf("Text() empty form should not show a count:\n%s", got)
	}
}

func TestHTMLUsesSectionAccent(t *testing.T) {
	news := HTML(sampleRecords, "교통", News)
	if !strings.Contains(news, "#007acc") || !strings.Contains(news, "📰") || !strings.Contains(news, ">기사 링크</a>") {
		t.Errorf("HTML() news section styling wrong:\n%s", news)
	}

	blogs := HTML(sampleRecords, "교통", Blogs)
	if !strings.Contains(blogs, "#28a745") || !strings.Contains(blogs, ">블로그 링크</a>") {
		t.Errorf("HTML() blog section styling wrong:\n%s", blogs)
	}
}

func TestHTMLEscapesFields(t *testing.T) {
	records := []pipeline.Record{{
		Title:            `<script>alert("x")</script>`,
		Summary:          "a & b",
		Source:           "블로그",
		PublishedDisplay: "시간 정보 없음",
	}}

	got := HTML(records, "테스트", News)
	if strings.Contains(got, "<script>") {
		t.Errorf("HTML() did not escape title:\n%s", got)
	}
	if !strings.Contains(got, "a &amp; b") {
		t.Errorf("HTML() did not escape summary:\n%s", got)
	}
}

func TestHTMLEmpty(t *testing.T) {
	got := HTML(nil, "교통", News)
	if !strings.Contains(got, "<em>검색 결과가 없습니다.</em>") {
		t.Errorf("HTML() empty form wrong:\n%s", got)
	}
}

func TestMarkdownLinksTitles(t *testing.T) {
	got := Markdown(sampleRecords, "교통", News)
	if !strings.Contains(got, "[서울시 새 교통 정책 발표](https://news.example.com/1)") {
		t.Errorf("Markdown() missing linked title:\n%s", got)
	}
	if !strings.Contains(got, "**시스템 점검 안내**") {
		t.Errorf("Markdown() linkless record should keep bold title:\n%s", got)
	}
}

func TestMarkdownEscapesTitleBrackets(t *testing.T) {
	records := []pipeline.Record{{
		Title: "[단독] 화성시 예산안 (수정) 통과",
		Link:  "https://news.example.com/a_(1)",
	}}
	got := Markdown(records, "예산", News)
	if !strings.Contains(got, `[\[단독\] 화성시 예산안 \(수정\) 통과](https://news.example.com/a_%281%29)`) {
		t.Errorf("Markdown() did not escape link text and URL:\n%s", got)
	}
}
