package timeseries

import (
	"fmt"
	"strings"
	"time"
)

// Window is the caller's requested time bounds, inclusive on both ends.
// Minute-granularity fetches split a multi-day window into one sub-request
// per calendar day; the window itself may span any number of days.
type Window struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// Default trading-session bounds applied when a minute request arrives with
// bare dates instead of timestamps.
const (
	sessionOpen  = "09:30:00"
	sessionClose = "16:00:00"
)

// NormalizeRange canonicalizes raw start/end strings for the granularity.
// Daily inputs are truncated to their date part. Minute inputs accept ISO
// timestamps with or without a trailing Z, "YYYY-MM-DD HH:MM:SS", or bare
// dates; a bare-date pair expands to the default trading session on those
// days.
func NormalizeRange(granularity Granularity, start, end string) (string, string) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if granularity == GranularityDaily {
		if len(start) > 10 {
			start = start[:10]
		}
		if len(end) > 10 {
			end = end[:10]
		}
		return start, end
	}

	if isBareDate(start) && isBareDate(end) {
		return start[:10] + "T" + sessionOpen + "Z", end[:10] + "T" + sessionClose + "Z"
	}
	return toISO(start), toISO(end)
}

func isBareDate(s string) bool {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	return len(s) == 10 || (s[10] != 'T' && s[10] != ' ')
}

func toISO(s string) string {
	switch {
	case strings.Contains(s, "T") && strings.HasSuffix(s, "Z"):
		return s
	case strings.Contains(s, "T"):
		return s + "Z"
	case strings.Contains(s, " "):
		return strings.Replace(s, " ", "T", 1) + "Z"
	}
	return s
}

// ParseWindow parses normalized bounds into a Window. Daily bounds must be
// calendar dates, minute bounds full timestamps.
func ParseWindow(granularity Granularity, start, end string) (Window, error) {
	layout := "2006-01-02T15:04:05Z"
	if granularity == GranularityDaily {
		layout = "2006-01-02"
	}

	startT, err := time.Parse(layout, start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start %q: %w", start, err)
	}
	endT, err := time.Parse(layout, end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end %q: %w", end, err)
	}
	return Window{Start: startT, End: endT, Granularity: granularity}, nil
}

// ParseTimestamp parses a record timestamp for minute-granularity
// comparisons. Accepted shapes: ISO with Z suffix, "YYYY-MM-DD HH:MM:SS",
// and anything whose first 19 characters form an ISO timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05Z", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, nil
	}
	if len(s) >= 19 {
		if t, err := time.Parse("2006-01-02T15:04:05", s[:19]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseDay parses the calendar-date prefix of a timestamp for daily
// comparisons. The first 10 characters of any supported timestamp form a
// valid date.
func ParseDay(s string) (time.Time, error) {
	if len(s) < 10 {
		return time.Time{}, fmt.Errorf("value %q too short for a date", s)
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t, nil
}

// Days lists the calendar days covered by the window, inclusive, in
// chronological order.
func (w Window) Days() []time.Time {
	start := truncateToDay(w.Start)
	end := truncateToDay(w.End)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether t falls within the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
