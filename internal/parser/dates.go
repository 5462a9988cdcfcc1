package parser

import (
	"regexp"
	"strings"
	"time"
)

// DateFormat is one accepted completion-date form. Rank is the format
// specificity: an ISO date can only be a date, "June 6, 2025" leaves more
// room for OCR noise. Rank becomes the candidate confidence.
type DateFormat struct {
	Name   string
	Layout string
	Rank   float64
}

// DefaultDateFormats returns the accepted formats in match order. First
// successful parse wins.
func DefaultDateFormats() []DateFormat {
	return []DateFormat{
		{Name: "iso", Layout: "2006-01-02", Rank: 1.0},
		{Name: "us_slash", Layout: "1/2/2006", Rank: 0.9},
		{Name: "us_dash", Layout: "1-2-2006", Rank: 0.85},
		{Name: "textual", Layout: "January 2, 2006", Rank: 0.8},
		{Name: "textual_weekday", Layout: "Monday, January 2, 2006", Rank: 0.8},
	}
}

// parseDate tries the ordered formats and returns the parsed date with the
// winning format's rank.
func parseDate(formats []DateFormat, s string) (time.Time, float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, 0, false
	}
	for _, f := range formats {
		if t, err := time.Parse(f.Layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), f.Rank, true
		}
	}
	return time.Time{}, 0, false
}

// dateScanPatterns pull date-shaped substrings out of mixed text, e.g.
// "Completed in full on 06/06/2025". Substrings still go through parseDate.
var dateScanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	regexp.MustCompile(`(?:[A-Z][a-z]+, )?[A-Z][a-z]+ \d{1,2}, \d{4}`),
}

// scanDate finds the first date-shaped substring in a segment.
func scanDate(formats []DateFormat, segment string) (time.Time, float64, bool) {
	for _, pattern := range dateScanPatterns {
		m := pattern.FindString(segment)
		if m == "" {
			continue
		}
		if t, rank, ok := parseDate(formats, m); ok {
			return t, rank, true
		}
	}
	return time.Time{}, 0, false
}
