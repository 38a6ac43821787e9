// Package digest assembles the daily keyword digest: keyword news and
// blog sections, the evening weather, and network info, rendered into
// the stored text, HTML and markdown bodies.
package digest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"kdigest/internal/config"
	"kdigest/internal/database"
	"kdigest/internal/dates"
	"kdigest/internal/netinfo"
	"kdigest/internal/pipeline"
	"kdigest/internal/render"
	"kdigest/internal/weather"
)

// SectionResult holds one keyword's records for one section.
type SectionResult struct {
	Keyword string
	Records []pipeline.Record
}

// Digest is one assembled daily digest.
type Digest struct {
	RunDate      string
	Subject      string
	BodyText     string
	BodyHTML     string
	BodyMarkdown string
	News         []SectionResult
	Blogs        []SectionResult
	Weather      *weather.Report
	Network      *netinfo.Info
}

// ItemCount returns the number of records across both sections.
func (d *Digest) ItemCount() int {
	var n int
	for _, s := range d.News {
		n += len(s.Records)
	}
	for _, s := range d.Blogs {
		n += len(s.Records)
	}
	return n
}

// Builder runs the pipelines and assembles digests.
type Builder struct {
	cfg      *config.Config
	newsPipe *pipeline.Pipeline
	blogPipe *pipeline.Pipeline
	weather  *weather.Client
	netinfo  *netinfo.Client
	now      func() time.Time
}

// NewBuilder creates a digest builder. The weather and netinfo clients
// may be nil when those blocks are disabled.
func NewBuilder(cfg *config.Config, news, blogs *pipeline.Pipeline, wc *weather.Client, nc *netinfo.Client) *Builder {
	return &Builder{
		cfg:      cfg,
		newsPipe: news,
		blogPipe: blogs,
		weather:  wc,
		netinfo:  nc,
		now:      time.Now,
	}
}

// Build runs every configured keyword through both pipelines and
// assembles the digest bodies.
func (b *Builder) Build(ctx context.Context) *Digest {
	runDate := b.now().In(dates.KST).Format("2006-01-02")
	d := &Digest{
		RunDate: runDate,
		Subject: fmt.Sprintf("📬 %s 키워드 다이제스트", runDate),
	}

	newsOpts := pipeline.Options{
		MaxResults: b.cfg.Search.News.MaxResults,
		HoursBack:  b.cfg.Search.News.HoursBack,
	}
	blogOpts := pipeline.Options{
		MaxResults: b.cfg.Search.Blogs.MaxResults,
		HoursBack:  b.cfg.Search.Blogs.HoursBack,
	}

	for _, keyword := range b.cfg.Keywords {
		log.Printf("digest: collecting %q", keyword)
		d.News = append(d.News, SectionResult{
			Keyword: keyword,
			Records: b.newsPipe.Run(ctx, keyword, newsOpts),
		})
		d.Blogs = append(d.Blogs, SectionResult{
			Keyword: keyword,
			Records: b.blogPipe.Run(ctx, keyword, blogOpts),
		})
	}

	if b.weather != nil && b.cfg.Weather.Enabled {
		report := b.weather.ByAddress(ctx, b.cfg.Weather.Address)
		d.Weather = &report
	}
	if b.netinfo != nil && b.cfg.Network.Enabled {
		info := b.netinfo.Lookup(ctx)
		d.Network = &info
	}

	d.BodyText = b.assembleText(d)
	d.BodyHTML = b.assembleHTML(d)
	d.BodyMarkdown = b.assembleMarkdown(d)
	return d
}

func (b *Builder) assembleText(d *Digest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s 키워드 다이제스트\n", d.RunDate)

	for _, s := range d.News {
		sb.WriteString(render.Text(s.Records, s.Keyword, render.News))
	}
	for _, s := range d.Blogs {
		sb.WriteString(render.Text(s.Records, s.Keyword, render.Blogs))
	}
	if d.Weather != nil {
		sb.WriteString(weather.Text(*d.Weather))
	}
	if d.Network != nil {
		sb.WriteString(netinfo.Text(*d.Network))
	}
	return sb.String()
}

func (b *Builder) assembleHTML(d *Digest) string {
	var sb strings.Builder
	sb.WriteString("<html><body>\n")
	fmt.Fprintf(&sb, "<h2>%s 키워드 다이제스트</h2>\n", d.RunDate)

	for _, s := range d.News {
		sb.WriteString(render.HTML(s.Records, s.Keyword, render.News))
	}
	for _, s := range d.Blogs {
		sb.WriteString(render.HTML(s.Records, s.Keyword, render.Blogs))
	}
	if d.Weather != nil {
		sb.WriteString(weather.HTML(*d.Weather))
	}
	if d.Network != nil {
		sb.WriteString(netinfo.HTML(*d.Network))
	}
	sb.WriteString("</body></html>\n")
	return sb.String()
}

func (b *Builder) assembleMarkdown(d *Digest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s 키워드 다이제스트\n\n", d.RunDate)

	for _, s := range d.News {
		sb.WriteString(render.Markdown(s.Records, s.Keyword, render.News))
		sb.WriteString("\n")
	}
	for _, s := range d.Blogs {
		sb.WriteString(render.Markdown(s.Records, s.Keyword, render.Blogs))
		sb.WriteString("\n")
	}
	if d.Weather != nil {
		sb.WriteString(weatherMarkdown(*d.Weather))
	}
	if d.Network != nil {
		sb.WriteString(networkMarkdown(*d.Network))
	}
	return sb.String()
}

func weatherMarkdown(r weather.Report) string {
	address := r.Address
	if address == "" {
		address = "알 수 없는 위치"
	}
	if r.Status == weather.StatusAddressError {
		return fmt.Sprintf("## 🌤️ %s 날씨 정보\n\n_주소를 찾을 수 없습니다._\n\n", address)
	}

	var sb strings.Builder
	title := address + " 날씨 정보"
	if r.TimeRange != "" {
		title += " (" + r.TimeRange + ")"
	}
	fmt.Fprintf(&sb, "## 🌤️ %s\n\n", title)
	fmt.Fprintf(&sb, "- 기온: %s\n", r.Temperature)
	fmt.Fprintf(&sb, "- 습도: %s\n", r.Humidity)
	fmt.Fprintf(&sb, "- 풍속: %s\n", r.WindSpeed)
	fmt.Fprintf(&sb, "- 날씨: %s\n\n", r.Condition)
	return sb.String()
}

func networkMarkdown(info netinfo.Info) string {
	var sb strings.Builder
	sb.WriteString("## 🌐 현재 네트워크 정보\n\n")
	fmt.Fprintf(&sb, "- 로컬 IP: %s\n", info.LocalIP)
	fmt.Fprintf(&sb, "- 공용 IP: %s\n\n", info.PublicIP)
	return sb.String()
}

// Store writes the digest and its items to the database, replacing any
// earlier run for the same date. The whole run commits atomically.
func Store(db *database.DB, d *Digest) error {
	var items []database.DigestItem

	collect := func(section string, results []SectionResult) {
		for _, s := range results {
			for _, r := range s.Records {
				item := database.DigestItem{
					Section:          section,
					Keyword:          s.Keyword,
					Title:            r.Title,
					Summary:          r.Summary,
					Source:           r.Source,
					PublishedDisplay: r.PublishedDisplay,
					Position:         len(items),
				}
				if r.Link != "" {
					link := r.Link
					item.Link = &link
				}
				items = append(items, item)
			}
		}
	}
	collect("news", d.News)
	collect("blog", d.Blogs)

	row := database.Digest{
		RunDate:      d.RunDate,
		Subject:      d.Subject,
		BodyText:     d.BodyText,
		BodyHTML:     d.BodyHTML,
		BodyMarkdown: d.BodyMarkdown,
		ItemCount:    d.ItemCount(),
	}
	if _, err := db.ReplaceDigest(row, items); err != nil {
		return fmt.Errorf("storing digest: %w", err)
	}

	log.Printf("digest: stored %s (%d items)", d.RunDate, d.ItemCount())
	return nil
}
