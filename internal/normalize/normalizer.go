// Package normalize canonicalizes a validated draft record into the exact
// representation the broker schema requires. Normalization is idempotent:
// running it on an already-normalized record changes nothing.
package normalize

import (
	"strings"
	"time"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Normalize produces the verified form of a draft record: whitespace
// collapsed with case preserved, credits rounded half-up to one fractional
// digit, date truncated to a UTC calendar day, category replaced by its
// canonical token.
func Normalize(rec entity.CourseRecord) entity.VerifiedRecord {
	out := rec

	out.CourseName = collapse(rec.CourseName)
	out.CourseCode = collapse(rec.CourseCode)
	out.ProviderName = collapse(rec.ProviderName)
	out.NASBASponsorID = collapse(rec.NASBASponsorID)

	// decimal.Round is round-half-away-from-zero; credits are non-negative
	// here, so this is round-half-up.
	out.Credits = rec.Credits.Round(1)

	d := rec.CompletionDate.UTC()
	out.CompletionDate = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	if canonical, ok := constants.Canonicalize(string(rec.FieldOfStudy)); ok {
		out.FieldOfStudy = canonical
	}

	return entity.VerifiedRecord{CourseRecord: out}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
