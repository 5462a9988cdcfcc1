package constants

import (
	"strings"
)

// FieldOfStudy is the internal subject classification printed on NASBA-style
// CPE certificates. CE Broker wants its own subject checkboxes; see subject.go.
type FieldOfStudy string

const (
	Accounting     FieldOfStudy = "Accounting"
	Auditing       FieldOfStudy = "Auditing"
	AuditingFraud  FieldOfStudy = "Auditing - Fraud"
	Taxes          FieldOfStudy = "Taxes"
	Economics      FieldOfStudy = "Economics"
	Ethics         FieldOfStudy = "Ethics"
	PersonnelHR    FieldOfStudy = "Personnel / Human Resources"
	Communications FieldOfStudy = "Communications and Marketing"
	General        FieldOfStudy = "General"
)

var allFieldsOfStudy = []FieldOfStudy{
	Accounting,
	Auditing,
	AuditingFraud,
	Taxes,
	Economics,
	Ethics,
	PersonnelHR,
	Communications,
	General,
}

// FieldsOfStudy returns the reporting-category enumeration in stable order.
func FieldsOfStudy() []FieldOfStudy {
	out := make([]FieldOfStudy, len(allFieldsOfStudy))
	copy(out, allFieldsOfStudy)
	return out
}

func FieldsOfStudyStrings() []string {
	result := make([]string, len(allFieldsOfStudy))
	for i, f := range allFieldsOfStudy {
		result[i] = string(f)
	}
	return result
}

// Canonicalize maps free text to a member of the enumeration. It only accepts
// exact (case-insensitive) names and a small synonym table; fuzzy matching
// against noisy OCR text lives in the parser.
func Canonicalize(input string) (FieldOfStudy, bool) {
	if input == "" {
		return General, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	synonyms := map[string]FieldOfStudy{
		"tax":                 Taxes,
		"taxation":            Taxes,
		"accountancy":         Accounting,
		"audit":               Auditing,
		"fraud":               AuditingFraud,
		"professional ethics": Ethics,
		"regulatory ethics":   Ethics,
		"behavioral ethics":   Ethics,
		"hr":                  PersonnelHR,
		"human resources":     PersonnelHR,
		"personnel":           PersonnelHR,
		"marketing":           Communications,
		"communications":      Communications,
	}

	if f, ok := synonyms[normalized]; ok {
		return f, true
	}

	for _, f := range allFieldsOfStudy {
		if normalized == strings.ToLower(string(f)) {
			return f, true
		}
	}

	return General, false
}
