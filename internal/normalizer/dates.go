package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// msTimestampPattern guards against millisecond timestamps that were
	// serialized as strings.
	msTimestampPattern = regexp.MustCompile(`^\d{10,}$`)

	// dmyPattern matches day/month/year with 1-2 digit day and month and a
	// 2 or 4 digit year, separated by slashes or dashes.
	dmyPattern = regexp.MustCompile(`(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})`)
)

// dateLayouts are tried in order for direct string parsing. The month-first
// slash layouts mirror how the upstream dashboard interpreted ambiguous
// dates, so "01/02/2023" stays January 2.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006 15:04",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate coerces a raw cell value to a timestamp, trying in order:
// a numeric millisecond timestamp, a digits-only string of 10+ characters
// (a serialized millisecond timestamp), the known calendar layouts, and
// finally a D/M/Y pattern with 2-digit years assumed to be in the 2000s.
// The boolean is false when every strategy fails; ParseDate never errors.
func ParseDate(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case nil:
		return time.Time{}, false
	case float64:
		return time.UnixMilli(int64(ts)).UTC(), true
	case int:
		return time.UnixMilli(int64(ts)).UTC(), true
	case int64:
		return time.UnixMilli(ts).UTC(), true
	case time.Time:
		return ts.UTC(), true
	}

	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return time.Time{}, false
	}

	if msTimestampPattern.MatchString(s) {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		if len(m[3]) == 2 {
			year += 2000
		}

		if month >= 1 && month <= 12 && day >= 1 && day <= daysIn(year, time.Month(month)) {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
