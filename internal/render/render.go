// Package render formats pipeline records into plain-text, HTML and
// markdown digest blocks. Pure formatting, no business logic.
package render

import (
	"fmt"
	"html"
	"strings"

	"kdigest/internal/pipeline"
)

const noResults = "검색 결과가 없습니다."

// Section carries the per-section presentation: headings, accent color
// and link label differ between the news and blog blocks.
type Section struct {
	Label     string
	Emoji     string
	Accent    string
	LinkLabel string
	ItemEmoji string
}

// News is the presentation for news-section blocks.
var News = Section{
	Label:     "뉴스",
	Emoji:     "📰",
	Accent:    "#007acc",
	LinkLabel: "기사 링크",
	ItemEmoji: "📺",
}

// Blogs is the presentation for blog-section blocks.
var Blogs = Section{
	Label:     "블로그",
	Emoji:     "✍️",
	Accent:    "#28a745",
	LinkLabel: "블로그 링크",
	ItemEmoji: "✍️",
}

// Text renders a plain-text digest block for one keyword.
func Text(records []pipeline.Record, keyword string, section Section) string {
	var b strings.Builder

	if len(records) == 0 {
		fmt.Fprintf(&b, "\n%q 관련 최신 %s:\n- %s\n", keyword, section.Label, noResults)
		return b.String()
	}

	fmt.Fprintf(&b, "\n%q 관련 최신 %s (%d건):\n\n", keyword, section.Label, len(records))
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "   요약: %s\n", r.Summary)
		fmt.Fprintf(&b, "   출처: %s\n", r.Source)
		fmt.Fprintf(&b, "   등록: %s\n", r.PublishedDisplay)
		if r.Link != "" {
			fmt.Fprintf(&b, "   링크: %s\n", r.Link)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders an HTML fragment for one keyword, suitable for embedding
// in the digest page or an HTML email body. All record fields are
// escaped.
func HTML(records []pipeline.Record, keyword string, section Section) string {
	var b strings.Builder
	k := html.EscapeString(keyword)

	if len(records) == 0 {
		fmt.Fprintf(&b, "<h3>%s \"%s\" 관련 최신 %s</h3>\n", section.Emoji, k, section.Label)
		fmt.Fprintf(&b, "<p><em>%s</em></p>\n", noResults)
		return b.String()
	}

	fmt.Fprintf(&b, "<h3>%s \"%s\" 관련 최신 %s (%d건)</h3>\n", section.Emoji, k, section.Label, len(records))
	b.WriteString("<div style=\"margin-left: 10px;\">\n")
	for i, r := range records {
		fmt.Fprintf(&b, "<div style=\"margin-bottom: 15px; padding: 10px; border-left: 3px solid %s;\">\n", section.Accent)
		fmt.Fprintf(&b, "<h4 style=\"margin: 0 0 5px 0; color: %s;\">%d. %s</h4>\n",
			section.Accent, i+1, html.EscapeString(r.Title))
		fmt.Fprintf(&b, "<p style=\"margin: 5px 0; color: #555; font-size: 14px;\">📝 <strong>요약:</strong> %s</p>\n",
			html.EscapeString(r.Summary))
		fmt.Fprintf(&b, "<p style=\"margin: 5px 0; color: #777; font-size: 12px;\">%s <strong>출처:</strong> %s | 🕒 <strong>등록:</strong> %s</p>\n",
			section.ItemEmoji, html.EscapeString(r.Source), html.EscapeString(r.PublishedDisplay))
		if r.Link != "" {
			fmt.Fprintf(&b, "<p style=\"margin: 5px 0; font-size: 12px;\">🔗 <a href=\"%s\" style=\"color: %s;\">%s</a></p>\n",
				html.EscapeString(r.Link), section.Accent, section.LinkLabel)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// Titles go into [text](url) links; brackets and parens would terminate
// the link early. URLs only need parens percent-encoded.
var (
	markdownTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`)
	markdownURLEscaper  = strings.NewReplacer("(", "%28", ")", "%29")
)

// Markdown renders the block stored in the digest body and shown by the
// web viewer.
func Markdown(records []pipeline.Record, keyword string, section Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s %q 관련 최신 %s\n\n", section.Emoji, keyword, section.Label)
	if len(records) == 0 {
		fmt.Fprintf(&b, "_%s_\n", noResults)
		return b.String()
	}

	for i, r := range records {
		if r.Link != "" {
			fmt.Fprintf(&b, "%d. **[%s](%s)**\n", i+1,
				markdownTextEscaper.Replace(r.Title), markdownURLEscaper.Replace(r.Link))
		} else {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, markdownTextEscaper.Replace(r.Title))
		}
		fmt.Fprintf(&b, "   - %s\n", r.Summary)
		fmt.Fprintf(&b, "   - %s | %s\n", r.Source, r.PublishedDisplay)
	}
	return b.String()
}
