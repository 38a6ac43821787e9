package summary

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSummarizePrefersRelevantSentences(t *testing.T) {
	s := New(NewsProfile())
	title := "화성시 반도체 클러스터 조성 계획 발표"
	content := "오늘 날씨는 대체로 맑았고 기온은 평년 수준을 유지했습니다. " +
		"화성시는 반도체 클러스터 조성을 위한 세부 계획을 공개하고 부지 선정 절차에 들어갔다. " +
		"클러스터 조성에는 오년간 이조원이 투입되며 반도체 소재 기업을 유치할 예정이다."

	got := s.Summarize(title, content, "")
	if !strings.Contains(got, "반도체") {
		t.Errorf("expected title-relevant sentence first, got %q", got)
	}
	if strings.HasPrefix(got, "오늘 날씨는") {
		t.Errorf("irrelevant sentence ranked first: %q", got)
	}
}

func TestSummarizeFiltersBoilerplate(t *testing.T) {
	s := New(NewsProfile())
	content := "기자 김철수가 현장에서 단독으로 보도한 내용입니다 정말로. " +
		"사진 제공 화성시청 공보담당관실에서 배포했습니다. " +
		"시는 내년부터 청년 주거 지원 사업을 대폭 확대하기로 결정했다."

	got := s.Summarize("화성시 청년 주거 지원 확대", content, "")
	if strings.Contains(got, "기자 김철수") || strings.Contains(got, "사진 제공") {
		t.Errorf("boilerplate sentence survived: %q", got)
	}
}

func TestSummarizeRetriesHeadlineEchoingContent(t *testing.T) {
	s := New(NewsProfile())
	title := "화성시 동탄 교통 대책 발표"
	content := "화성시 동탄 교통 대책 발표 내용은 화성시 동탄 교통 대책. " +
		"화성시 동탄 교통 대책 발표 관련 화성시 동탄 교통 대책. " +
		"주민들은 버스 노선 확대와 도로 개선을 요구했다."

	got := s.Summarize(title, content, "")
	if !strings.Contains(got, "버스 노선") {
		t.Errorf("expected next-ranked sentence after headline echo, got %q", got)
	}
	if strings.Contains(got, "내용은") {
		t.Errorf("top echo sentence should be dropped on retry, got %q", got)
	}
}

func TestSummarizeLengthBound(t *testing.T) {
	s := New(NewsProfile())
	long := strings.Repeat("화성시는 매우 다양한 분야의 정책 사업을 계속해서 추진하고 있습니다. ", 10)
	got := s.Summarize("화성시 정책 사업", long, "")

	if utf8.RuneCountInString(got) > 150 {
		t.Errorf("summary exceeds 150 runes: %d", utf8.RuneCountInString(got))
	}
	if got == "" {
		t.Error("summary must never be empty")
	}
}

func TestSummarizeEndsWithTerminator(t *testing.T) {
	s := New(NewsProfile())
	content := "화성시가 신규 산업 단지를 유치하며 고용 창출 효과를 기대하고 있다"
	got := s.Summarize("화성시 산업 단지 유치", content+" 추가 설명 문장이 이어집니다 충분히 길게", "")
	if !strings.HasSuffix(got, ".") && !strings.HasSuffix(got, "...") {
		t.Errorf("summary not sentence-terminated: %q", got)
	}
}

func TestSummarizeFallsBackToDescription(t *testing.T) {
	s := New(NewsProfile())
	desc := "화성시가 청년 창업 지원 센터를 새로 열고 입주 기업 모집을 시작했다는 소식입니다"
	got := s.Summarize("화성시 소식", "짧은 본문", desc)
	if !strings.Contains(got, "청년 창업 지원 센터") {
		t.Errorf("expected description-based summary, got %q", got)
	}
}

func TestSummarizeRejectsEchoDescription(t *testing.T) {
	s := New(NewsProfile())
	title := "화성시 청년 창업 지원 센터 입주 기업 모집 시작 안내"
	// Description is effectively the headline again.
	got := s.Summarize(title, "", title+" 관련")
	if got != NewsProfile().ReadMore {
		t.Errorf("expected placeholder for headline-echo description, got %q", got)
	}
}

func TestSummarizePlaceholder(t *testing.T) {
	news := New(NewsProfile())
	if got := news.Summarize("제목", "", ""); got != NewsProfile().ReadMore {
		t.Errorf("news placeholder = %q", got)
	}
	blog := New(BlogProfile())
	if got := blog.Summarize("제목", "", ""); got != BlogProfile().ReadMore {
		t.Errorf("blog placeholder = %q", got)
	}
}

func TestCleanDescription(t *testing.T) {
	s := New(NewsProfile())
	got := s.CleanDescription("<p>화성시가   청년 정책을 발표했다는 내용의 기사입니다</p> - 화성저널")
	if got != "화성시가 청년 정책을 발표했다는 내용의 기사입니다" {
		t.Errorf("CleanDescription = %q", got)
	}
}

func TestCleanDescriptionStripsURLs(t *testing.T) {
	s := New(NewsProfile())
	got := s.CleanDescription("화성시 소식 전체 기사는 https://example.com/a/1 에서 확인할 수 있으며 자세한 배경 설명이 포함되어 있습니다")
	if strings.Contains(got, "https://") || strings.Contains(got, "example.com") {
		t.Errorf("URL survived cleaning: %q", got)
	}
}

func TestCleanDescriptionTooShort(t *testing.T) {
	s := New(BlogProfile())
	if got := s.CleanDescription("짧음"); got != BlogProfile().ReadMore {
		t.Errorf("expected read-more placeholder, got %q", got)
	}
}

func TestCleanDescriptionSentenceBoundaryCut(t *testing.T) {
	s := New(NewsProfile())
	first := strings.Repeat("가나다라 ", 20) + "첫 문장 끝"
	desc := first + ". " + strings.Repeat("마바사아 ", 30)
	got := s.CleanDescription(desc)
	if utf8.RuneCountInString(got) > 150 {
		t.Errorf("cleaned description exceeds 150 runes: %d", utf8.RuneCountInString(got))
	}
}
