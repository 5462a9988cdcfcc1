package validate

import (
	"testing"

	"github.com/supercpe/cpe-tracker/internal/entity"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	name := func(text string, conf float64) entity.FieldCandidate {
		return entity.FieldCandidate{Field: entity.FieldCourseName, Text: text, Confidence: conf}
	}

	t.Run("empty input is missing", func(t *testing.T) {
		t.Parallel()
		if sel := Select(nil); sel.Outcome != OutcomeMissing {
			t.Fatalf("outcome = %v", sel.Outcome)
		}
	})

	t.Run("single candidate selected", func(t *testing.T) {
		t.Parallel()
		sel := Select([]entity.FieldCandidate{name("A", 0.55)})
		if sel.Outcome != OutcomeSelected || sel.Candidate.Text != "A" {
			t.Fatalf("selection = %+v", sel)
		}
	})

	t.Run("strictly higher confidence wins", func(t *testing.T) {
		t.Parallel()
		sel := Select([]entity.FieldCandidate{name("low", 0.55), name("high", 0.95)})
		if sel.Outcome != OutcomeSelected || sel.Candidate.Text != "high" {
			t.Fatalf("selection = %+v", sel)
		}
	})

	t.Run("equal confidence same value collapses", func(t *testing.T) {
		t.Parallel()
		sel := Select([]entity.FieldCandidate{name("same", 0.95), name("same", 0.95)})
		if sel.Outcome != OutcomeSelected || sel.Candidate.Text != "same" {
			t.Fatalf("selection = %+v", sel)
		}
	})

	t.Run("equal confidence differing values is ambiguous", func(t *testing.T) {
		t.Parallel()
		sel := Select([]entity.FieldCandidate{name("A", 0.95), name("B", 0.95)})
		if sel.Outcome != OutcomeAmbiguous {
			t.Fatalf("selection = %+v", sel)
		}
		if len(sel.Tied) != 2 {
			t.Fatalf("tied = %+v", sel.Tied)
		}
	})

	t.Run("lower-confidence disagreement is not ambiguous", func(t *testing.T) {
		t.Parallel()
		sel := Select([]entity.FieldCandidate{name("winner", 0.95), name("A", 0.60), name("B", 0.60)})
		if sel.Outcome != OutcomeSelected || sel.Candidate.Text != "winner" {
			t.Fatalf("selection = %+v", sel)
		}
	})
}
