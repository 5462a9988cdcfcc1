package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Validator.Now = func() time.Time {
		return time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	}
	return cfg
}

// certificateSegments is a NASBA-style self-study certificate as the OCR
// stage delivers it.
var certificateSegments = []string{
	"Professional Education Services",
	"This certifies that Jane Doe has completed",
	"Debt: Selected Debt Related Issues",
	"Course Code: M116-2025-01-SSDL",
	"Field of Study: Taxes",
	"CPE Credits: 2.0",
	"Completion Date: 2025-06-06",
}

func TestExtractEndToEnd(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil)
	doc := entity.NewDocument("cert.pdf")

	rec, issues := p.Extract(doc, certificateSegments)
	if len(issues) != 0 {
		t.Fatalf("issues = %+v", issues)
	}
	if rec == nil {
		t.Fatal("record is nil")
	}

	if rec.CourseName != "Debt: Selected Debt Related Issues" {
		t.Errorf("course name = %q", rec.CourseName)
	}
	if rec.CourseCode != "M116-2025-01-SSDL" {
		t.Errorf("course code = %q", rec.CourseCode)
	}
	if rec.FieldOfStudy != constants.Taxes {
		t.Errorf("field of study = %q", rec.FieldOfStudy)
	}
	if rec.Credits.StringFixed(1) != "2.0" {
		t.Errorf("credits = %s", rec.Credits)
	}
	want := time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC)
	if !rec.CompletionDate.Equal(want) {
		t.Errorf("completion date = %v, want %v", rec.CompletionDate, want)
	}
	if rec.IsEthics {
		t.Error("tax course flagged as ethics")
	}
}

func TestExtractIsTotal(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil)
	doc := entity.NewDocument("cert.pdf")

	cases := []struct {
		name     string
		segments []string
	}{
		{"complete certificate", certificateSegments},
		{"empty input", nil},
		{"pure noise", []string{"lorem ipsum", "dolor sit amet"}},
		{"partial certificate", []string{"Course Name: Something", "Credits: 2.0"}},
		{"conflicting codes", append(append([]string{}, certificateSegments...), "Course Code: X999-2025-01")},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			rec, issues := p.Extract(doc, c.segments)
			if (rec == nil) == (len(issues) == 0) {
				t.Fatalf("exactly one of record/issues must be set: rec=%v issues=%+v", rec, issues)
			}
		})
	}
}

func TestExtractBlockedReportsEveryIssue(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil)
	rec, issues := p.Extract(entity.NewDocument("cert.pdf"), []string{
		"Course Name: Something Useful",
		"Credits: 2.0",
	})
	if rec != nil {
		t.Fatalf("record = %+v", rec)
	}
	// course_code, field_of_study and completion_date are all absent
	if len(issues) != 3 {
		t.Fatalf("issues = %+v, want 3", issues)
	}
	for _, issue := range issues {
		if issue.Kind != entity.IssueMissing {
			t.Errorf("issue kind = %s", issue.Kind)
		}
	}
}

func TestRunBatch(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil)

	jobs := []Job{
		{Document: entity.NewDocument("a.pdf"), Segments: certificateSegments},
		{Document: entity.NewDocument("b.pdf"), Segments: nil},
		{Document: entity.NewDocument("c.pdf"), Segments: certificateSegments},
		{Document: entity.NewDocument("d.pdf"), Segments: []string{"noise only"}},
	}

	results := p.RunBatch(context.Background(), jobs, 3)
	if len(results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(results), len(jobs))
	}

	byFilename := map[string]Result{}
	for _, r := range results {
		byFilename[r.Document.Filename] = r
	}
	for _, name := range []string{"a.pdf", "c.pdf"} {
		r, ok := byFilename[name]
		if !ok || r.Record == nil {
			t.Errorf("%s: expected a verified record, got %+v", name, r)
		}
	}
	for _, name := range []string{"b.pdf", "d.pdf"} {
		r, ok := byFilename[name]
		if !ok || r.Record != nil || len(r.Issues) == 0 {
			t.Errorf("%s: expected issues, got %+v", name, r)
		}
	}
}

func TestRunBatchHonorsCancellation(t *testing.T) {
	t.Parallel()

	p := New(testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 64)
	for i := range jobs {
		jobs[i] = Job{Document: entity.NewDocument("x.pdf"), Segments: certificateSegments}
	}

	// with a cancelled context the feeder stops early; whatever was already
	// picked up still completes
	results := p.RunBatch(ctx, jobs, 4)
	if len(results) > len(jobs) {
		t.Fatalf("results = %d", len(results))
	}
}
