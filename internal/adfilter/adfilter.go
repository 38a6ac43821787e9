// Package adfilter flags promotional feed items by keyword heuristics.
package adfilter

import "strings"

// Mode selects how aggressively promotional content is detected.
type Mode string

const (
	// ModeBroad matches the full promotional vocabulary anywhere in the
	// title and description. Trades false positives on legitimate articles
	// that mention commercial terms for better recall.
	ModeBroad Mode = "broad"

	// ModeTagPrefix only matches explicit ad tags within the first 100
	// runes. Lower recall, but safe for sources with reliable tagging.
	ModeTagPrefix Mode = "tag_prefix"
)

// adVocabulary is the broad promotional keyword list: explicit ad tags
// plus commercial-intent words.
var adVocabulary = []string{
	"광고", "홍보", "협찬", "제휴",
	"할인", "이벤트", "프로모션", "마케팅", "브랜드",
	"론칭", "오픈", "신제품", "출시",
	"특가", "세일", "쿠폰", "포인트", "혜택", "무료체험",
	"[광고]", "(광고)", "[pr]", "(pr)", "[홍보]", "(홍보)", "[ad]", "(ad)",
}

// explicitTags are the markers checked in tag-prefix mode.
var explicitTags = []string{
	"[광고]", "(광고)", "[pr]", "(pr)", "[홍보]", "(홍보)", "[ad]", "(ad)", "[협찬]",
}

const tagPrefixWindow = 100

// Detector classifies items as promotional or not.
type Detector struct {
	mode Mode
}

// New returns a Detector for the given mode. Unknown modes fall back to
// broad matching.
func New(mode Mode) *Detector {
	if mode != ModeTagPrefix {
		mode = ModeBroad
	}
	return &Detector{mode: mode}
}

// Mode returns the active detection mode.
func (d *Detector) Mode() Mode {
	return d.mode
}

// IsPromotional reports whether the title/description pair looks like an
// ad or promotional piece.
func (d *Detector) IsPromotional(title, description string) bool {
	content := strings.ToLower(title + " " + description)

	if d.mode == ModeTagPrefix {
		runes := []rune(content)
		if len(runes) > tagPrefixWindow {
			content = string(runes[:tagPrefixWindow])
		}
		for _, tag := range explicitTags {
			if strings.Contains(content, tag) {
				return true
			}
		}
		return false
	}

	for _, keyword := range adVocabulary {
		if strings.Contains(content, keyword) {
			return true
		}
	}
	return false
}
