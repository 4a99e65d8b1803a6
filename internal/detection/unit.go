package detection

import (
	"regexp"
	"strings"

	"github.com/sizeshop/backend/internal/domain"
)

var nonLetterRegex = regexp.MustCompile(`[^a-z]`)

// NormalizeUnit maps a raw unit token to a canonical unit.
// Only "inch" and "in" map to inches; anything else, including the empty
// token and a bare double quote, is centimeters.
func NormalizeUnit(token string) domain.Unit {
	if token == "" {
		return domain.UnitCentimeter
	}
	normalized := nonLetterRegex.ReplaceAllString(strings.ToLower(token), "")
	if normalized == "inch" || normalized == "in" {
		return domain.UnitInch
	}
	return domain.UnitCentimeter
}

// normalizeUnitToken is NormalizeUnit with the optional quote-as-inch mapping
func normalizeUnitToken(token string, quoteAsInch bool) domain.Unit {
	if quoteAsInch && strings.TrimSpace(token) == `"` {
		return domain.UnitInch
	}
	return NormalizeUnit(token)
}
