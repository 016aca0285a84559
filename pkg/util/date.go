package util

import (
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/araddon/dateparse"
)

// DateLayouts are tried in order before falling back to the permissive parser.
var DateLayouts = []string{
    "2006-01-02",
    "01/02/2006",
    "1/2/2006",
    "2006/01/02",
    "02-Jan-06",
    "2-Jan-06",
    "02-Jan-2006",
    "2-Jan-2006",
    "Jan 2, 2006",
    "January 2, 2006",
    "2006-01-02 15:04:05",
    time.RFC3339,
    time.RFC3339Nano,
    // day-first only wins when the month-first reading is impossible
    "02/01/2006",
    "2/1/2006",
}

// compactLayout is the only bare-integer form accepted: eight digits, yyyymmdd.
const compactLayout = "20060102"

// ParseDate resolves a single date value of any supported format to midnight UTC.
// Each value is resolved on its own, so one column may mix formats.
func ParseDate(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, fmt.Errorf("empty date")
    }
    for _, layout := range DateLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            return TruncateDay(t), nil
        }
    }
    // other bare integers are ambiguous with unix timestamps; refuse them
    if _, err := strconv.ParseInt(s, 10, 64); err == nil {
        if len(s) == len(compactLayout) {
            if t, err := time.Parse(compactLayout, s); err == nil {
                return TruncateDay(t), nil
            }
        }
        return time.Time{}, fmt.Errorf("unrecognized date %q", s)
    }
    t, err := dateparse.ParseIn(s, time.UTC,
        dateparse.PreferMonthFirst(true),
        dateparse.RetryAmbiguousDateWithSwap(true),
    )
    if err != nil {
        return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
    }
    return TruncateDay(t), nil
}

// TruncateDay keeps the calendar day of t as seen in its own location.
func TruncateDay(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
