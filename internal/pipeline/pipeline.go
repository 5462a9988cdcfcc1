// Package pipeline orchestrates parse → validate → normalize for one
// document per call. The pipeline holds no mutable state, so one instance
// can serve any number of goroutines.
package pipeline

import (
	"log/slog"

	"github.com/supercpe/cpe-tracker/internal/entity"
	"github.com/supercpe/cpe-tracker/internal/normalize"
	"github.com/supercpe/cpe-tracker/internal/parser"
	"github.com/supercpe/cpe-tracker/internal/validate"
)

// Config aggregates the stage configurations.
type Config struct {
	Parser    parser.Config
	Validator validate.Config
}

// DefaultConfig returns the documented stage defaults.
func DefaultConfig() Config {
	return Config{
		Parser:    parser.DefaultConfig(),
		Validator: validate.DefaultConfig(),
	}
}

// Pipeline coordinates the field parser, validator and normalizer.
type Pipeline struct {
	logger    *slog.Logger
	parser    *parser.Parser
	validator *validate.Validator
}

func New(cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:    logger,
		parser:    parser.New(cfg.Parser, logger),
		validator: validate.New(cfg.Validator, logger),
	}
}

// Extract runs the full pipeline over one document's text segments. It is
// total over its inputs: exactly one of the returns is populated — a
// verified record, or a non-empty issue list. Never both, never neither,
// never a partial record.
func (p *Pipeline) Extract(doc entity.Document, segments []string) (*entity.VerifiedRecord, []entity.ValidationIssue) {
	candidates := p.parser.ParseFields(segments)

	draft, issues := p.validator.Validate(candidates)
	if len(issues) > 0 {
		p.logger.Info("pipeline.extract.blocked",
			"document_id", doc.ID,
			"filename", doc.Filename,
			"candidates", len(candidates),
			"issues", len(issues),
		)
		return nil, issues
	}

	verified := normalize.Normalize(*draft)

	p.logger.Info("pipeline.extract.ok",
		"document_id", doc.ID,
		"filename", doc.Filename,
		"course", verified.CourseName,
		"code", verified.CourseCode,
		"field_of_study", verified.FieldOfStudy,
		"credits", verified.Credits,
		"completed", verified.CompletionDate.Format("2006-01-02"),
	)
	return &verified, nil
}

// ParseFields exposes the parse stage alone for collaborators that want raw
// candidates (e.g. review tooling).
func (p *Pipeline) ParseFields(segments []string) []entity.FieldCandidate {
	return p.parser.ParseFields(segments)
}
