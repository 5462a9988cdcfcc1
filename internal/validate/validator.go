// Package validate selects one candidate per field and enforces the domain
// constraints. Every violation is accumulated; validation never stops at the
// first problem, so an operator sees the whole document's defects at once.
package validate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Config holds the validation bounds. All of it is explicit input; nothing is
// read from process-wide state.
type Config struct {
	MaxCredits    decimal.Decimal          // per-course maximum, default 50
	LookbackYears int                      // minimum reporting window, default 3 (triennial)
	Categories    []constants.FieldOfStudy // accepted reporting categories
	Now           func() time.Time         // injectable clock
}

// DefaultConfig returns the documented defaults: 50 credit hours per course
// and a three-year reporting lookback.
func DefaultConfig() Config {
	return Config{
		MaxCredits:    decimal.NewFromInt(50),
		LookbackYears: 3,
		Categories:    constants.FieldsOfStudy(),
		Now:           time.Now,
	}
}

type Validator struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxCredits.IsZero() {
		cfg.MaxCredits = decimal.NewFromInt(50)
	}
	if cfg.LookbackYears <= 0 {
		cfg.LookbackYears = 3
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = constants.FieldsOfStudy()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Validator{cfg: cfg, logger: logger}
}

// Validate resolves candidates into a draft CourseRecord or the full list of
// blocking issues. Issues appear in field-check order (required fields first,
// each field's constraint checks in sequence) so assertions are
// deterministic. Exactly one of the return values is non-empty.
func (v *Validator) Validate(candidates []entity.FieldCandidate) (*entity.CourseRecord, []entity.ValidationIssue) {
	byField := map[entity.FieldName][]entity.FieldCandidate{}
	for _, c := range candidates {
		byField[c.Field] = append(byField[c.Field], c)
	}

	var rec entity.CourseRecord
	var issues []entity.ValidationIssue

	for _, field := range entity.RequiredFields() {
		sel := Select(byField[field])
		switch sel.Outcome {
		case OutcomeMissing:
			issues = append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueMissing,
				Message: "no candidate found for required field",
			})
		case OutcomeAmbiguous:
			values := make([]string, len(sel.Tied))
			for i, c := range sel.Tied {
				values[i] = c.ComparableValue()
			}
			issues = append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueAmbiguous,
				Message: fmt.Sprintf("equal-confidence candidates disagree: %s", strings.Join(values, " | ")),
			})
		case OutcomeSelected:
			issues = append(issues, v.checkField(field, sel.Candidate, &rec)...)
		}
	}

	v.applyOptional(byField, &rec)

	if strings.Contains(strings.ToLower(rec.CourseName), "ethic") || rec.FieldOfStudy == constants.Ethics {
		rec.IsEthics = true
	}

	if len(issues) > 0 {
		v.logger.Debug("validate.blocked", "issues", len(issues))
		return nil, issues
	}
	return &rec, nil
}

// checkField applies the per-field constraints to a selected candidate and
// writes accepted values into the draft record.
func (v *Validator) checkField(field entity.FieldName, c entity.FieldCandidate, rec *entity.CourseRecord) []entity.ValidationIssue {
	var issues []entity.ValidationIssue

	switch field {
	case entity.FieldCourseName, entity.FieldCourseCode:
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueMalformed,
				Message: "value is empty after trimming",
			})
		}
		if field == entity.FieldCourseName {
			rec.CourseName = text
		} else {
			rec.CourseCode = text
		}

	case entity.FieldOfStudy:
		if c.Category == "" || !v.knownCategory(c.Category) {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueUnrecognized,
				Message: fmt.Sprintf("%q does not resolve to a reporting category", c.Raw),
			})
		}
		rec.FieldOfStudy = c.Category

	case entity.FieldCredits:
		if exp := c.Credits.Exponent(); exp < -1 {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueMalformed,
				Message: fmt.Sprintf("credits %s carry more than one fractional digit", c.Credits),
			})
		}
		if !c.Credits.IsPositive() {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueOutOfRange,
				Message: "credits must be greater than zero",
			})
		}
		if c.Credits.GreaterThan(v.cfg.MaxCredits) {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueOutOfRange,
				Message: fmt.Sprintf("credits %s exceed the per-course maximum of %s", c.Credits, v.cfg.MaxCredits),
			})
		}
		rec.Credits = c.Credits

	case entity.FieldCompletionDate:
		if c.Date.IsZero() {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueMalformed,
				Message: "completion date did not parse",
			})
		}
		today := dateOnly(v.cfg.Now().UTC())
		if c.Date.After(today) {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueOutOfRange,
				Message: fmt.Sprintf("completion date %s is in the future", c.Date.Format("2006-01-02")),
			})
		}
		// The lookback boundary itself is still reportable.
		if boundary := today.AddDate(-v.cfg.LookbackYears, 0, 0); c.Date.Before(boundary) {
			return append(issues, entity.ValidationIssue{
				Field:   field,
				Kind:    entity.IssueOutOfRange,
				Message: fmt.Sprintf("completion date %s predates the %d-year reporting window", c.Date.Format("2006-01-02"), v.cfg.LookbackYears),
			})
		}
		rec.CompletionDate = c.Date
	}

	return issues
}

// applyOptional fills non-blocking fields. Ambiguous or unreadable optionals
// are dropped, never reported.
func (v *Validator) applyOptional(byField map[entity.FieldName][]entity.FieldCandidate, rec *entity.CourseRecord) {
	for _, field := range entity.OptionalFields() {
		sel := Select(byField[field])
		if sel.Outcome != OutcomeSelected {
			if sel.Outcome == OutcomeAmbiguous {
				v.logger.Debug("validate.optional.ambiguous", "field", field)
			}
			continue
		}
		text := strings.TrimSpace(sel.Candidate.Text)
		if text == "" {
			continue
		}
		switch field {
		case entity.FieldProviderName:
			rec.ProviderName = text
		case entity.FieldDeliveryMethod:
			rec.DeliveryMethod = constants.DeliveryMethod(text)
		case entity.FieldNASBASponsorID:
			rec.NASBASponsorID = text
		}
	}
}

func (v *Validator) knownCategory(f constants.FieldOfStudy) bool {
	for _, c := range v.cfg.Categories {
		if c == f {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
