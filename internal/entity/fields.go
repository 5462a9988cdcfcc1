package entity

// FieldName identifies one extractable field on a completion certificate.
type FieldName string

const (
	FieldCourseName     FieldName = "course_name"
	FieldCourseCode     FieldName = "course_code"
	FieldOfStudy        FieldName = "field_of_study"
	FieldCredits        FieldName = "credits"
	FieldCompletionDate FieldName = "completion_date"

	// Optional fields; extracted when present, never required.
	FieldProviderName   FieldName = "provider_name"
	FieldDeliveryMethod FieldName = "delivery_method"
	FieldNASBASponsorID FieldName = "nasba_sponsor_id"
)

// RequiredFields returns the five mandatory fields in validation order.
// Issue lists follow this order, so it has to stay stable.
func RequiredFields() []FieldName {
	return []FieldName{
		FieldCourseName,
		FieldCourseCode,
		FieldOfStudy,
		FieldCredits,
		FieldCompletionDate,
	}
}

// OptionalFields returns the non-blocking fields in selection order.
func OptionalFields() []FieldName {
	return []FieldName{
		FieldProviderName,
		FieldDeliveryMethod,
		FieldNASBASponsorID,
	}
}
