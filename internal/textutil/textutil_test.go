package textutil

import (
	"math"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	got := StripMarkup("<p>안녕하세요 &amp; <b>환영</b>합니다</p>")
	want := "안녕하세요 & 환영 합니다"
	if got != want {
		t.Errorf("StripMarkup = %q, want %q", got, want)
	}
}

func TestStripMarkupCollapsesWhitespace(t *testing.T) {
	got := StripMarkup("  hello\n\n  world\t ")
	if got != "hello world" {
		t.Errorf("StripMarkup = %q, want %q", got, "hello world")
	}
}

func TestNormalizeForComparison(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Hello!!! World  ", "hello world"},
		{"파이썬 기초 강좌!", "파이썬 기초 강좌"},
		{"[속보] AI 규제, 국회 통과", "속보 ai 규제 국회 통과"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeForComparison(c.in); got != c.want {
			t.Errorf("NormalizeForComparison(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestJaccardIdentity(t *testing.T) {
	for _, s := range []string{"", "hello world", "파이썬 기초 강좌"} {
		if got := Jaccard(s, s); got != 1.0 {
			t.Errorf("Jaccard(%q, same) = %f, want 1.0", s, got)
		}
	}
}

func TestJaccardSymmetry(t *testing.T) {
	a, b := "python basics tutorial", "python basics tutorial guide"
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Errorf("Jaccard not symmetric: %f vs %f", Jaccard(a, b), Jaccard(b, a))
	}
}

func TestJaccardPartialOverlap(t *testing.T) {
	// 3 shared tokens, 4 in the union.
	got := Jaccard("python basics tutorial", "python basics tutorial guide")
	if math.Abs(got-0.75) > 1e-10 {
		t.Errorf("Jaccard = %f, want 0.75", got)
	}
}

func TestJaccardOneEmpty(t *testing.T) {
	if got := Jaccard("", "hello"); got != 0.0 {
		t.Errorf("Jaccard(empty, non-empty) = %f, want 0.0", got)
	}
}

func TestIsDuplicate(t *testing.T) {
	seen := []string{"python basics tutorial"}

	if !IsDuplicate("python basics tutorial guide", seen) {
		t.Error("expected near-identical title to be a duplicate")
	}
	if IsDuplicate("golang concurrency patterns", seen) {
		t.Error("expected unrelated title not to be a duplicate")
	}
	if IsDuplicate("anything", nil) {
		t.Error("expected no duplicates against an empty seen set")
	}
}
