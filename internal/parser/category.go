package parser

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/supercpe/cpe-tracker/constants"
)

// matchCategory resolves free field-of-study text against the configured
// reporting categories. Exact and synonym matches score 1.0; otherwise the
// best levenshtein similarity wins if it clears minScore. The raw text is
// kept on the candidate either way.
func matchCategory(categories []constants.FieldOfStudy, input string, minScore float64) (constants.FieldOfStudy, float64, bool) {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return "", 0, false
	}

	if f, ok := constants.Canonicalize(cleaned); ok {
		for _, c := range categories {
			if c == f {
				return f, 1.0, true
			}
		}
	}

	lower := strings.ToLower(cleaned)
	var best constants.FieldOfStudy
	bestScore := 0.0
	for _, c := range categories {
		score := levenshtein.Match(lower, strings.ToLower(string(c)), nil)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < minScore {
		return "", bestScore, false
	}
	return best, bestScore, true
}
