package database

// Digest is one stored daily digest run.
type Digest struct {
	ID           int64
	RunDate      string
	Subject      string
	BodyText     string
	BodyHTML     string
	BodyMarkdown string
	ItemCount    int
	GeneratedAt  *string
}

// DigestItem is one article or blog post within a digest.
type DigestItem struct {
	ID               int64
	DigestID         int64
	Section          string // "news" or "blog"
	Keyword          string
	Title            string
	Summary          string
	Source           string
	Link             *string
	PublishedDisplay string
	Position         int
}

// Stats contains aggregate database statistics.
type Stats struct {
	TotalDigests int
	TotalItems   int
	NewsItems    int
	BlogItems    int
}
