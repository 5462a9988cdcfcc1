package constants

// SubmissionStatus is the canonical status for rows in submission history.
type SubmissionStatus string

// Stable values (store these exact strings in DB).
const (
	SubmissionStatusReady     SubmissionStatus = "READY"     // verified record built, payload pending
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED" // reported to CE Broker
	SubmissionStatusDuplicate SubmissionStatus = "DUPLICATE" // same certificate hash seen before
	SubmissionStatusRejected  SubmissionStatus = "REJECTED"  // blocked by validation issues
)
