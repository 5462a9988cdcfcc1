package entity

import "github.com/supercpe/cpe-tracker/constants"

// BrokerPayload is the projection of a VerifiedRecord into the shape the
// CE Broker reporting form expects. It is only ever constructed from a
// VerifiedRecord plus submission context, never from raw input.
type BrokerPayload struct {
	Category       constants.BrokerCategory `json:"category"`
	CourseName     string                   `json:"course_name"`
	CourseCode     string                   `json:"course_code"`
	ProviderName   string                   `json:"provider_name"`
	CompletionDate string                   `json:"completion_date"` // MM/DD/YYYY
	Hours          string                   `json:"hours"`           // decimal, one fractional digit
	CourseType     constants.CourseType     `json:"course_type"`
	Subjects       []string                 `json:"subjects"`
	FieldOfStudy   string                   `json:"field_of_study"`
	NASBASponsor   string                   `json:"nasba_sponsor"`

	// Broker-side constants supplied by the submission context.
	OrganizationID string `json:"organization_id"`
	FormVersion    string `json:"form_version"`

	CertificateFilename string `json:"certificate_filename,omitempty"`
}
