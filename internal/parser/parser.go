// Package parser turns raw OCR text segments into typed field candidates.
// It is pure: no I/O, no shared state, and it never guesses — a field that
// cannot be read yields no candidate at all.
package parser

import (
	"log/slog"
	"regexp"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Confidence tiers. Labeled segments beat positional heuristics; dates carry
// their format rank instead.
const (
	confLabeledText    = 0.95
	confLabeledCredits = 0.90
	confScanDateWeight = 0.75
	confScanCredits    = 0.65
	confScanCourseCode = 0.60
	confCompletionCue  = 0.55
)

// Config holds the parse-stage knobs. The enumerations are explicit inputs
// so tests and parallel callers never share process-wide state.
type Config struct {
	DateFormats      []DateFormat
	Categories       []constants.FieldOfStudy
	MinCategoryScore float64 // fuzzy match floor, default 0.78
}

// DefaultConfig returns the documented defaults: the standard date formats
// and the full reporting-category enumeration.
func DefaultConfig() Config {
	return Config{
		DateFormats:      DefaultDateFormats(),
		Categories:       constants.FieldsOfStudy(),
		MinCategoryScore: 0.78,
	}
}

type Parser struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = DefaultDateFormats()
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = constants.FieldsOfStudy()
	}
	if cfg.MinCategoryScore <= 0 {
		cfg.MinCategoryScore = 0.78
	}
	return &Parser{cfg: cfg, logger: logger}
}

// completionCue marks segments like "certifies the successful completion of"
// whose following segment is usually the course title.
var completionCue = regexp.MustCompile(`(?i)successful(?:ly)? complet|completion of|has completed|certif(?:y|ies) that`)

// ParseFields produces zero or more candidates per expected field from
// already-segmented certificate text. Multiple candidates for one field are
// normal; selection is the validator's job.
func (p *Parser) ParseFields(segments []string) []entity.FieldCandidate {
	var out []entity.FieldCandidate
	prevCued := false

	for _, seg := range segments {
		clean := CleanText(seg)
		if clean == "" {
			prevCued = false
			continue
		}

		if field, value, ok := splitLabel(clean); ok {
			if c, ok := p.labeledCandidate(field, value); ok {
				out = append(out, c)
			}
			prevCued = false
			continue
		}

		// Positional heuristics over unlabeled text.
		if prevCued {
			if _, _, isDate := scanDate(p.cfg.DateFormats, clean); !isDate {
				out = append(out, entity.FieldCandidate{
					Field:      entity.FieldCourseName,
					Raw:        seg,
					Text:       clean,
					Confidence: confCompletionCue,
				})
			}
		}
		prevCued = completionCue.MatchString(clean)

		if date, rank, ok := scanDate(p.cfg.DateFormats, clean); ok {
			out = append(out, entity.FieldCandidate{
				Field:      entity.FieldCompletionDate,
				Raw:        seg,
				Date:       date,
				Confidence: rank * confScanDateWeight,
			})
		}
		if credits, ok := scanCredits(clean); ok {
			out = append(out, entity.FieldCandidate{
				Field:      entity.FieldCredits,
				Raw:        seg,
				Credits:    credits,
				Confidence: confScanCredits,
			})
		}
		if code, ok := scanCourseCode(clean); ok {
			out = append(out, entity.FieldCandidate{
				Field:      entity.FieldCourseCode,
				Raw:        seg,
				Text:       code,
				Confidence: confScanCourseCode,
			})
		}
	}

	p.logger.Debug("parser.fields", "segments", len(segments), "candidates", len(out))
	return out
}

// labeledCandidate builds the candidate for a "Label: value" segment.
// Unparseable values yield no candidate; the validator reports the gap.
func (p *Parser) labeledCandidate(field entity.FieldName, value string) (entity.FieldCandidate, bool) {
	switch field {
	case entity.FieldCourseName, entity.FieldProviderName, entity.FieldNASBASponsorID, entity.FieldCourseCode:
		if value == "" {
			return entity.FieldCandidate{}, false
		}
		return entity.FieldCandidate{
			Field:      field,
			Raw:        value,
			Text:       value,
			Confidence: confLabeledText,
		}, true

	case entity.FieldOfStudy:
		if value == "" {
			return entity.FieldCandidate{}, false
		}
		c := entity.FieldCandidate{
			Field:      field,
			Raw:        value,
			Text:       value,
			Confidence: confLabeledText,
		}
		if match, score, ok := matchCategory(p.cfg.Categories, value, p.cfg.MinCategoryScore); ok {
			c.Category = match
			p.logger.Debug("parser.category.match", "raw", value, "category", match, "score", score)
		}
		return c, true

	case entity.FieldCredits:
		credits, ok := parseCredits(value)
		if !ok {
			return entity.FieldCandidate{}, false
		}
		return entity.FieldCandidate{
			Field:      field,
			Raw:        value,
			Credits:    credits,
			Confidence: confLabeledCredits,
		}, true

	case entity.FieldCompletionDate:
		date, rank, ok := parseDate(p.cfg.DateFormats, value)
		if !ok {
			date, rank, ok = scanDate(p.cfg.DateFormats, value)
		}
		if !ok {
			return entity.FieldCandidate{}, false
		}
		return entity.FieldCandidate{
			Field:      field,
			Raw:        value,
			Date:       date,
			Confidence: rank,
		}, true

	case entity.FieldDeliveryMethod:
		method, ok := constants.ParseDeliveryMethod(value)
		if !ok {
			return entity.FieldCandidate{}, false
		}
		return entity.FieldCandidate{
			Field:      field,
			Raw:        value,
			Text:       string(method),
			Confidence: confLabeledCredits,
		}, true
	}
	return entity.FieldCandidate{}, false
}
