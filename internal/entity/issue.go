package entity

import "fmt"

// IssueKind classifies a validation failure. Values are stable strings; they
// end up in API responses and submission history rows.
type IssueKind string

const (
	IssueMissing      IssueKind = "MISSING"               // no candidate for a required field
	IssueAmbiguous    IssueKind = "AMBIGUOUS"             // irreconcilable tie between candidates
	IssueOutOfRange   IssueKind = "OUT_OF_RANGE"          // date or credits outside allowed bounds
	IssueUnrecognized IssueKind = "UNRECOGNIZED_CATEGORY" // field_of_study unmapped
	IssueMalformed    IssueKind = "MALFORMED"             // value present but not in required shape
)

// ValidationIssue is one blocking problem found while validating a document.
// Issues are accumulated; a record with any issue is never verified.
type ValidationIssue struct {
	Field   FieldName `json:"field"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Field, i.Kind, i.Message)
}
