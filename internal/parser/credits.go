package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// creditsMention matches "2.0 CPE hours", "4 credits", "1.5 hrs" inside
	// free text.
	creditsMention = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:cpe\s+)?(?:credit|hour|hr)s?\b`)

	// numberToken is the first standalone number in an already-isolated
	// credits value.
	numberToken = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// parseCredits interprets the value portion of a labeled credits segment.
// Currency symbols and stray letters around the number are ignored; anything
// that does not resolve to a non-negative decimal yields no candidate rather
// than a wrong guess.
func parseCredits(raw string) (decimal.Decimal, bool) {
	token := numberToken.FindString(raw)
	if token == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// scanCredits finds a credits mention in unlabeled text ("This course
// qualifies for 2.0 CPE hours").
func scanCredits(segment string) (decimal.Decimal, bool) {
	m := creditsMention.FindStringSubmatch(segment)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseCredits(m[1])
}

// fractionalDigits counts decimal places in the value as written, e.g.
// "2.0" has one, "2.25" has two.
func fractionalDigits(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// looksLikeCourseCode matches provider course identifiers such as
// "M116-2025-01-SSDL": an alphanumeric token with digits and at least one
// dash, all uppercase.
var courseCodePattern = regexp.MustCompile(`\b[A-Z]{1,4}\d{2,4}(?:-[A-Z0-9]{1,6}){1,4}\b`)

func scanCourseCode(segment string) (string, bool) {
	m := courseCodePattern.FindString(segment)
	if m == "" {
		return "", false
	}
	return strings.TrimSpace(m), true
}
