package validate

import (
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// Outcome tags the result of candidate selection for one field. An
// irreconcilable tie is an explicit outcome, never a silent first pick.
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeSelected
	OutcomeAmbiguous
)

// Selection is the tagged selection result for one field.
type Selection struct {
	Outcome   Outcome
	Candidate entity.FieldCandidate // set when Selected
	Tied      []entity.FieldCandidate
}

// Select picks at most one candidate. Strictly higher confidence wins.
// Equal-confidence candidates with the same normalized value collapse into
// one; equal confidence with differing values is ambiguous.
func Select(candidates []entity.FieldCandidate) Selection {
	if len(candidates) == 0 {
		return Selection{Outcome: OutcomeMissing}
	}

	best := candidates[0].Confidence
	for _, c := range candidates[1:] {
		if c.Confidence > best {
			best = c.Confidence
		}
	}

	var top []entity.FieldCandidate
	seen := map[string]bool{}
	for _, c := range candidates {
		if c.Confidence != best {
			continue
		}
		key := c.ComparableValue()
		if seen[key] {
			continue
		}
		seen[key] = true
		top = append(top, c)
	}

	if len(top) > 1 {
		return Selection{Outcome: OutcomeAmbiguous, Tied: top}
	}
	return Selection{Outcome: OutcomeSelected, Candidate: top[0]}
}
