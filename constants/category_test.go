package constants

import "testing"

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want FieldOfStudy
		ok   bool
	}{
		{"Taxes", Taxes, true},
		{"taxes", Taxes, true},
		{"  Tax  ", Taxes, true},
		{"Taxation", Taxes, true},
		{"Accounting", Accounting, true},
		{"audit", Auditing, true},
		{"Auditing - Fraud", AuditingFraud, true},
		{"Regulatory Ethics", Ethics, true},
		{"human resources", PersonnelHR, true},
		{"Marketing", Communications, true},
		{"General", General, true},
		{"", General, false},
		{"Underwater Basketweaving", General, false},
	}

	for _, c := range cases {
		got, ok := Canonicalize(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Canonicalize(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestSubjectsFor(t *testing.T) {
	t.Parallel()

	if got := SubjectsFor(Taxes); len(got) != 1 || got[0] != SubjectTaxes {
		t.Fatalf("SubjectsFor(Taxes) = %v", got)
	}
	// one field can select multiple checkboxes
	if got := SubjectsFor(Communications); len(got) != 2 {
		t.Fatalf("SubjectsFor(Communications) = %v", got)
	}
	// unknown fields fall back to public accounting
	if got := SubjectsFor(FieldOfStudy("Bogus")); len(got) != 1 || got[0] != SubjectPublicAccounting {
		t.Fatalf("SubjectsFor(unknown) = %v", got)
	}
}

func TestCourseTypeFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   DeliveryMethod
		want CourseType
	}{
		{DeliveryQASSelfStudy, CourseTypeComputerBased},
		{DeliveryWebinar, CourseTypeLive},
		{DeliveryGroupLive, CourseTypeLive},
		{DeliveryCorrespond, CourseTypeCorrespond},
		{DeliveryMethod(""), CourseTypeComputerBased}, // default
	}
	for _, c := range cases {
		if got := CourseTypeFor(c.in); got != c.want {
			t.Errorf("CourseTypeFor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseDeliveryMethod(t *testing.T) {
	t.Parallel()

	if m, ok := ParseDeliveryMethod("QAS Self-Study"); !ok || m != DeliveryQASSelfStudy {
		t.Fatalf("exact match failed: %q %v", m, ok)
	}
	if m, ok := ParseDeliveryMethod("online self study course"); !ok || m != DeliveryQASSelfStudy {
		t.Fatalf("shorthand match failed: %q %v", m, ok)
	}
	if _, ok := ParseDeliveryMethod("carrier pigeon"); ok {
		t.Fatal("expected no match")
	}
}

func TestIsAllowedExtension(t *testing.T) {
	t.Parallel()

	cases := []struct {
		filename string
		want     bool
	}{
		{"cert.pdf", true},
		{"CERT.PDF", true},
		{"scan.jpeg", true},
		{"scan.tiff", true},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsAllowedExtension(c.filename); got != c.want {
			t.Errorf("IsAllowedExtension(%q) = %v, want %v", c.filename, got, c.want)
		}
	}
}
