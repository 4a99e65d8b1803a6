package detection

import (
	"strings"

	"github.com/sizeshop/backend/internal/domain"
)

// Scoring for text matches
const (
	baseConfidence      = 0.5
	keywordBonus        = 0.3 // type name appears in the match
	separatorBonus      = 0.1 // ":" or "="
	unitBonus           = 0.1 // cm, inch, in or ", case-sensitive
	maxConfidence       = 1.0
	typedColumnScore    = 0.9
	labelValuePairScore = 0.8
)

// ScoreMatch assigns a heuristic confidence in [0,1] to a text match
func ScoreMatch(text string, t domain.MeasurementType) float64 {
	lower := strings.ToLower(text)
	confidence := baseConfidence

	if strings.Contains(lower, string(t)) {
		confidence += keywordBonus
	}
	if strings.ContainsAny(text, ":=") {
		confidence += separatorBonus
	}
	if containsUnitToken(text) {
		confidence += unitBonus
	}

	return clamp(confidence)
}

// containsUnitToken is case-sensitive: "CM" and "Inch" earn no unit bonus
func containsUnitToken(text string) bool {
	return strings.Contains(text, "cm") ||
		strings.Contains(text, "inch") ||
		strings.Contains(text, "in") ||
		strings.Contains(text, `"`)
}

func clamp(confidence float64) float64 {
	if confidence > maxConfidence {
		return maxConfidence
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}
