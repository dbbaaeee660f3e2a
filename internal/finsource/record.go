package finsource

import "strings"

// Record is one row of a JSON-format upstream response. Field names vary by
// resource (stock prices, index prices, minute prices, symbol listings), so
// rows stay generic until a caller shapes them.
type Record = map[string]any

// StringField returns the named field if present and a string.
func StringField(r Record, key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// SplitCSVLines splits a CSV-format response body into non-empty lines.
// Upstream terminates pages with a trailing newline, which must not count as
// a row.
func SplitCSVLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}
