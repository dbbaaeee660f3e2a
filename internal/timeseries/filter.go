package timeseries

import (
	"strings"
	"time"

	"github.com/hankli/FinSeriesGo/internal/finsource"
)

// dateFieldCandidates are the field names checked, in priority order, for a
// record's timestamp.
var dateFieldCandidates = []string{"datetime", "date", "timestamp", "time", "date_time"}

// FilterRecords keeps the records whose date field falls inside the window,
// bounds inclusive. Records without a recognizable date field, or whose
// value does not parse, are dropped.
func FilterRecords(records []finsource.Record, win Window) []finsource.Record {
	out := make([]finsource.Record, 0, len(records))
	for _, r := range records {
		val, ok := recordDateValue(r)
		if !ok {
			continue
		}
		t, err := parseForGranularity(val, win.Granularity)
		if err != nil {
			continue
		}
		if win.Contains(t) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCSVRows applies the same bound test to the date column of tabular
// rows. When no candidate column exists in the header, rows pass through
// unfiltered; trimming is a best effort, not a gate.
func FilterCSVRows(header string, rows []string, win Window) []string {
	idx := dateColumnIndex(header)
	if idx < 0 {
		return rows
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := strings.Split(row, ",")
		if idx >= len(parts) {
			continue
		}
		t, err := parseForGranularity(strings.TrimSpace(parts[idx]), win.Granularity)
		if err != nil {
			continue
		}
		if win.Contains(t) {
			out = append(out, row)
		}
	}
	return out
}

func recordDateValue(r finsource.Record) (string, bool) {
	for _, key := range dateFieldCandidates {
		if val, ok := finsource.StringField(r, key); ok {
			return val, true
		}
	}
	return "", false
}

func dateColumnIndex(header string) int {
	for i, col := range strings.Split(header, ",") {
		name := strings.ToLower(strings.TrimSpace(col))
		for _, candidate := range dateFieldCandidates {
			if name == candidate {
				return i
			}
		}
	}
	return -1
}

func parseForGranularity(val string, granularity Granularity) (time.Time, error) {
	if granularity == GranularityDaily {
		return ParseDay(val)
	}
	return ParseTimestamp(val)
}
