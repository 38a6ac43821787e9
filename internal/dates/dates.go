// Package dates parses the heterogeneous date strings found in syndication
// feeds into timestamps normalized to KST.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// KST is the reference timezone. Feeds mix offset-bearing and naive
// timestamps; everything is normalized here before comparison.
var KST = time.FixedZone("KST", 9*60*60)

// NoTimeInfo is the display value for records without a resolvable date.
const NoTimeInfo = "시간 정보 없음"

// formats are tried in order; the first successful parse wins.
var formats = []string{
	time.RFC1123,                // Mon, 02 Jan 2006 15:04:05 MST
	time.RFC1123Z,               // Mon, 02 Jan 2006 15:04:05 -0700
	"2006-01-02T15:04:05Z07:00", // ISO 8601 with offset
	"2006-01-02T15:04:05",       // ISO 8601 without offset
	"20060102",                  // compact date
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var koreanDate = regexp.MustCompile(`(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)

// Parse converts a free-form date string to a KST timestamp. Naive inputs
// are interpreted as already being KST. Returns ok=false when no known
// format matches.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range formats {
		if t, err := time.ParseInLocation(layout, raw, KST); err == nil {
			return t.In(KST), true
		}
	}

	if m := koreanDate.FindStringSubmatch(raw); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, KST), true
		}
	}

	return time.Time{}, false
}

// FormatDisplay renders a timestamp for the digest, or the no-time label
// when the record had no resolvable date.
func FormatDisplay(t time.Time, ok bool) string {
	if !ok {
		return NoTimeInfo
	}
	return t.In(KST).Format("2006-01-02 15:04")
}
