// Package broker projects verified course records into the CE Broker
// submission shape. The builder never sees raw input; its only record type
// is entity.VerifiedRecord.
package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// ErrConfigIncomplete signals missing broker-side constants. This is a
// deployment defect, not a document defect, and is deliberately a Go error
// rather than a ValidationIssue.
var ErrConfigIncomplete = errors.New("CONFIG_INCOMPLETE: broker submission context is missing required constants")

// Defaults for certificates that do not state them; values from the NASBA
// sponsor registry for these providers.
const (
	DefaultProviderName = "Professional Education Services"
	DefaultNASBASponsor = "112530"
)

// Context supplies broker-side constants that are not derivable from the
// certificate itself.
type Context struct {
	OrganizationID string // required
	FormVersion    string // required
	ProviderName   string // fallback when the certificate names no provider
	NASBASponsorID string // fallback sponsor registry ID

	CertificateFilename string
}

type Builder struct {
	logger *slog.Logger
}

func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Build maps a verified record plus submission context into the broker
// payload. The result is checked against the broker form schema before it is
// returned, so a malformed payload can never reach the submission client.
func (b *Builder) Build(rec entity.VerifiedRecord, ctx Context) (entity.BrokerPayload, error) {
	var missing []string
	if strings.TrimSpace(ctx.OrganizationID) == "" {
		missing = append(missing, "organization_id")
	}
	if strings.TrimSpace(ctx.FormVersion) == "" {
		missing = append(missing, "form_version")
	}
	if len(missing) > 0 {
		return entity.BrokerPayload{}, fmt.Errorf("%w: %s", ErrConfigIncomplete, strings.Join(missing, ", "))
	}

	category := constants.CategoryGeneralCPE
	if rec.IsEthics {
		category = constants.CategoryProfessionalEthics
	}

	subjects := constants.SubjectsFor(rec.FieldOfStudy)
	subjectNames := make([]string, len(subjects))
	for i, s := range subjects {
		subjectNames[i] = string(s)
	}

	provider := rec.ProviderName
	if provider == "" {
		provider = ctx.ProviderName
	}
	if provider == "" {
		provider = DefaultProviderName
	}

	sponsor := rec.NASBASponsorID
	if sponsor == "" {
		sponsor = ctx.NASBASponsorID
	}
	if sponsor == "" {
		sponsor = DefaultNASBASponsor
	}

	payload := entity.BrokerPayload{
		Category:            category,
		CourseName:          rec.CourseName,
		CourseCode:          rec.CourseCode,
		ProviderName:        provider,
		CompletionDate:      rec.CompletionDate.Format("01/02/2006"),
		Hours:               rec.Credits.StringFixed(1),
		CourseType:          constants.CourseTypeFor(rec.DeliveryMethod),
		Subjects:            subjectNames,
		FieldOfStudy:        string(rec.FieldOfStudy),
		NASBASponsor:        sponsor,
		OrganizationID:      ctx.OrganizationID,
		FormVersion:         ctx.FormVersion,
		CertificateFilename: ctx.CertificateFilename,
	}

	if err := ValidatePayload(payload); err != nil {
		return entity.BrokerPayload{}, fmt.Errorf("broker payload failed schema check: %w", err)
	}

	b.logger.Debug("broker.build.ok",
		"course", payload.CourseName,
		"category", payload.Category,
		"subjects", len(payload.Subjects),
	)
	return payload, nil
}
