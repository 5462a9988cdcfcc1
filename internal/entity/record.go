package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/supercpe/cpe-tracker/constants"
)

// CourseRecord is a draft course-completion record assembled from selected
// candidates. It becomes broker-ready only once normalized into a
// VerifiedRecord.
type CourseRecord struct {
	CourseName     string                 `json:"course_name"`
	CourseCode     string                 `json:"course_code"`
	FieldOfStudy   constants.FieldOfStudy `json:"field_of_study"`
	Credits        decimal.Decimal        `json:"credits"`
	CompletionDate time.Time              `json:"completion_date"`

	// Optional certificate facts; empty when the certificate omits them.
	ProviderName   string                   `json:"provider_name,omitempty"`
	DeliveryMethod constants.DeliveryMethod `json:"delivery_method,omitempty"`
	NASBASponsorID string                   `json:"nasba_sponsor_id,omitempty"`
	IsEthics       bool                     `json:"is_ethics,omitempty"`
}

// VerifiedRecord is a CourseRecord in canonical form. Only the normalizer
// produces one, which is what lets the broker builder trust its input.
type VerifiedRecord struct {
	CourseRecord
}
