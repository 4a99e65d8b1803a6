package detection

import (
	"regexp"

	"github.com/sizeshop/backend/internal/domain"
)

// MeasurementPattern is a labeled-value extraction rule. ValueGroup and
// UnitGroup index the regex capture groups holding the number and unit token.
type MeasurementPattern struct {
	Regex      *regexp.Regexp
	Type       domain.MeasurementType
	ValueGroup int
	UnitGroup  int
}

const (
	valueExpr = `(\d+(?:\.\d+)?)`
	unitExpr  = `(centimeters?|cm|inch|in|")`
)

func pattern(label string, t domain.MeasurementType, valueGroup, unitGroup int) MeasurementPattern {
	return MeasurementPattern{
		Regex:      regexp.MustCompile(`(?i)` + label + valueExpr + `\s*` + unitExpr),
		Type:       t,
		ValueGroup: valueGroup,
		UnitGroup:  unitGroup,
	}
}

// measurementPatterns are applied in declaration order. New types or label
// spellings are added here, not in the extractor.
var measurementPatterns = []MeasurementPattern{
	pattern(`chest[:\s]+`, domain.TypeChest, 1, 2),
	pattern(`bust[:\s]+`, domain.TypeChest, 1, 2),

	pattern(`waist[:\s]+`, domain.TypeWaist, 1, 2),

	pattern(`shoulder[:\s]+(width)?[:\s]*`, domain.TypeShoulder, 2, 3),
	pattern(`across\s+shoulder[:\s]+`, domain.TypeShoulder, 1, 2),

	pattern(`sleeve[:\s]+(length)?[:\s]*`, domain.TypeSleeve, 2, 3),
	pattern(`arm\s+length[:\s]+`, domain.TypeSleeve, 1, 2),

	pattern(`inseam[:\s]+`, domain.TypeInseam, 1, 2),
	pattern(`inside\s+leg[:\s]+`, domain.TypeInseam, 1, 2),

	pattern(`length[:\s]+`, domain.TypeLength, 1, 2),
	pattern(`total\s+length[:\s]+`, domain.TypeLength, 1, 2),
}

// Patterns returns the extraction rules in application order
func Patterns() []MeasurementPattern {
	out := make([]MeasurementPattern, len(measurementPatterns))
	copy(out, measurementPatterns)
	return out
}

// cellValueRegex reads the first number and optional unit from a table cell
var cellValueRegex = regexp.MustCompile(valueExpr + `\s*` + `(?i:(centimeters?|cm|inch|in|"))?`)
