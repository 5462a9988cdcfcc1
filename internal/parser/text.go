package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/supercpe/cpe-tracker/internal/entity"
)

// CleanText canonicalizes OCR text: Unicode NFC, whitespace collapsed to
// single spaces, leading/trailing space trimmed. Case is preserved.
func CleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// labelAliases maps lowercased certificate labels to field names. Scanned
// certificates vary a lot in labeling; these cover the NASBA-style layouts.
var labelAliases = map[string]entity.FieldName{
	"course name":                   entity.FieldCourseName,
	"course title":                  entity.FieldCourseName,
	"course":                        entity.FieldCourseName,
	"title":                         entity.FieldCourseName,
	"program name":                  entity.FieldCourseName,
	"course code":                   entity.FieldCourseCode,
	"course number":                 entity.FieldCourseCode,
	"course no":                     entity.FieldCourseCode,
	"course id":                     entity.FieldCourseCode,
	"code":                          entity.FieldCourseCode,
	"field of study":                entity.FieldOfStudy,
	"fields of study":               entity.FieldOfStudy,
	"subject":                       entity.FieldOfStudy,
	"subject area":                  entity.FieldOfStudy,
	"area of study":                 entity.FieldOfStudy,
	"credits":                       entity.FieldCredits,
	"credit hours":                  entity.FieldCredits,
	"cpe credits":                   entity.FieldCredits,
	"cpe hours":                     entity.FieldCredits,
	"hours":                         entity.FieldCredits,
	"contact hours":                 entity.FieldCredits,
	"completion date":               entity.FieldCompletionDate,
	"date of completion":            entity.FieldCompletionDate,
	"date completed":                entity.FieldCompletionDate,
	"completed on":                  entity.FieldCompletionDate,
	"completed":                     entity.FieldCompletionDate,
	"date":                          entity.FieldCompletionDate,
	"provider":                      entity.FieldProviderName,
	"provider name":                 entity.FieldProviderName,
	"sponsor":                       entity.FieldProviderName,
	"presented by":                  entity.FieldProviderName,
	"delivery method":               entity.FieldDeliveryMethod,
	"delivery":                      entity.FieldDeliveryMethod,
	"instructional delivery method": entity.FieldDeliveryMethod,
	"format":                        entity.FieldDeliveryMethod,
	"nasba sponsor":                 entity.FieldNASBASponsorID,
	"nasba sponsor id":              entity.FieldNASBASponsorID,
	"nasba id":                      entity.FieldNASBASponsorID,
	"sponsor id":                    entity.FieldNASBASponsorID,
}

// splitLabel splits "Course Name: Debt Issues" into a known field and its
// value. Only the first colon counts; unknown labels are not labels.
func splitLabel(segment string) (entity.FieldName, string, bool) {
	i := strings.Index(segment, ":")
	if i <= 0 {
		return "", "", false
	}
	label := strings.ToLower(strings.TrimSpace(segment[:i]))
	field, ok := labelAliases[label]
	if !ok {
		return "", "", false
	}
	return field, strings.TrimSpace(segment[i+1:]), true
}
