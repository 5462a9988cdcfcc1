package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/supercpe/cpe-tracker/constants"
)

// FieldCandidate is one typed interpretation of raw certificate text for a
// single field. A field may have several candidates when parsing is
// ambiguous; the validator selects or rejects, never the parser.
type FieldCandidate struct {
	Field FieldName `json:"field"`
	Raw   string    `json:"raw"`

	// Typed value slots; exactly one is meaningful per field.
	Text     string                 `json:"text,omitempty"`
	Credits  decimal.Decimal        `json:"credits,omitempty"`
	Date     time.Time              `json:"date,omitempty"`
	Category constants.FieldOfStudy `json:"category,omitempty"`

	// Confidence ranks candidates for the same field. For dates this is the
	// format specificity rank; for text fields it reflects whether the value
	// came from a labeled segment or a positional heuristic.
	Confidence float64 `json:"confidence"`
}

// ComparableValue returns the normalized comparison key used for tie-breaks:
// two equal-confidence candidates with the same key are the same value, not
// an ambiguity.
func (c FieldCandidate) ComparableValue() string {
	switch c.Field {
	case FieldCredits:
		return c.Credits.StringFixed(1)
	case FieldCompletionDate:
		return c.Date.Format("2006-01-02")
	case FieldOfStudy:
		if c.Category != "" {
			return string(c.Category)
		}
		return c.Text
	default:
		return c.Text
	}
}
