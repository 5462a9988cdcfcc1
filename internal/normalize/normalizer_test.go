package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

func recordsEqual(a, b entity.CourseRecord) bool {
	return a.CourseName == b.CourseName &&
		a.CourseCode == b.CourseCode &&
		a.FieldOfStudy == b.FieldOfStudy &&
		a.Credits.Equal(b.Credits) &&
		a.CompletionDate.Equal(b.CompletionDate) &&
		a.ProviderName == b.ProviderName &&
		a.DeliveryMethod == b.DeliveryMethod &&
		a.NASBASponsorID == b.NASBASponsorID &&
		a.IsEthics == b.IsEthics
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	in := entity.CourseRecord{
		CourseName:     "  Debt:   Selected Debt Related\tIssues ",
		CourseCode:     " M116-2025-01-SSDL ",
		FieldOfStudy:   constants.Taxes,
		Credits:        decimal.RequireFromString("2.0"),
		CompletionDate: time.Date(2025, time.June, 6, 14, 30, 12, 0, time.FixedZone("EDT", -4*3600)),
		ProviderName:   "Professional  Education Services",
	}

	got := Normalize(in)

	if got.CourseName != "Debt: Selected Debt Related Issues" {
		t.Errorf("course name = %q", got.CourseName)
	}
	if got.CourseCode != "M116-2025-01-SSDL" {
		t.Errorf("course code = %q", got.CourseCode)
	}
	if got.ProviderName != "Professional Education Services" {
		t.Errorf("provider = %q", got.ProviderName)
	}
	if got.Credits.StringFixed(1) != "2.0" {
		t.Errorf("credits = %s", got.Credits)
	}
	// 14:30 EDT on June 6 is June 6 18:30 UTC; the date component survives
	want := time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC)
	if !got.CompletionDate.Equal(want) {
		t.Errorf("completion date = %v, want %v", got.CompletionDate, want)
	}
}

func TestNormalizeRoundsHalfUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2.25", "2.3"},
		{"2.24", "2.2"},
		{"2.35", "2.4"},
		{"2", "2.0"},
		{"50", "50.0"},
	}
	for _, c := range cases {
		rec := entity.CourseRecord{Credits: decimal.RequireFromString(c.in)}
		if got := Normalize(rec).Credits.StringFixed(1); got != c.want {
			t.Errorf("Normalize credits %s = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestNormalizeCanonicalizesCategoryToken(t *testing.T) {
	t.Parallel()

	rec := entity.CourseRecord{FieldOfStudy: constants.FieldOfStudy("taxation")}
	if got := Normalize(rec).FieldOfStudy; got != constants.Taxes {
		t.Errorf("field of study = %q, want %q", got, constants.Taxes)
	}

	// tokens that do not canonicalize pass through untouched
	rec = entity.CourseRecord{FieldOfStudy: constants.FieldOfStudy("Mystery")}
	if got := Normalize(rec).FieldOfStudy; got != constants.FieldOfStudy("Mystery") {
		t.Errorf("field of study = %q", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	in := entity.CourseRecord{
		CourseName:     "  Ethics   in Practice ",
		CourseCode:     "E100-2024-03",
		FieldOfStudy:   constants.Ethics,
		Credits:        decimal.RequireFromString("2.25"),
		CompletionDate: time.Date(2025, time.January, 2, 23, 59, 0, 0, time.UTC),
		IsEthics:       true,
	}

	once := Normalize(in)
	twice := Normalize(once.CourseRecord)
	if !recordsEqual(once.CourseRecord, twice.CourseRecord) {
		t.Fatalf("normalize is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}
