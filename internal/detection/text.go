package detection

import (
	"math"
	"strconv"

	"github.com/sizeshop/backend/internal/domain"
)

// ExtractFromText runs every measurement pattern over text and returns the
// plausible, deduplicated matches in pattern order, then text order.
func ExtractFromText(text string) []domain.DetectedMeasurement {
	return extractFromText(text, false)
}

func extractFromText(text string, quoteAsInch bool) []domain.DetectedMeasurement {
	var measurements []domain.DetectedMeasurement
	if text == "" {
		return measurements
	}

	seen := make(map[domain.MeasurementKey]bool)

	for _, p := range measurementPatterns {
		for _, match := range p.Regex.FindAllStringSubmatch(text, -1) {
			value, ok := parseValue(match[p.ValueGroup])
			if !ok {
				continue
			}
			unit := normalizeUnitToken(match[p.UnitGroup], quoteAsInch)

			if !IsPlausible(value, unit, p.Type) {
				continue
			}

			key := domain.MeasurementKey{Type: p.Type, Value: value, Unit: unit}
			if seen[key] {
				continue
			}
			seen[key] = true

			measurements = append(measurements, domain.DetectedMeasurement{
				Text:       match[0],
				Value:      value,
				Unit:       unit,
				Type:       p.Type,
				Confidence: ScoreMatch(match[0], p.Type),
			})
		}
	}

	return measurements
}

// parseValue parses a matched number, rejecting anything not finite
func parseValue(s string) (float64, bool) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return 0, false
	}
	return value, true
}
