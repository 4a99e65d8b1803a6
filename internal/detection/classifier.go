package detection

import (
	"regexp"

	"github.com/sizeshop/backend/internal/domain"
)

// labelRules are tried in order; the first match wins
var labelRules = []struct {
	pattern *regexp.Regexp
	typ     domain.MeasurementType
}{
	{regexp.MustCompile(`(?i)chest|bust`), domain.TypeChest},
	{regexp.MustCompile(`(?i)waist`), domain.TypeWaist},
	{regexp.MustCompile(`(?i)shoulder`), domain.TypeShoulder},
	{regexp.MustCompile(`(?i)sleeve|arm`), domain.TypeSleeve},
	{regexp.MustCompile(`(?i)inseam|inside.*leg`), domain.TypeInseam},
	{regexp.MustCompile(`(?i)length|height`), domain.TypeLength},
}

// ClassifyLabel maps a column header or row label to a measurement type
func ClassifyLabel(label string) domain.MeasurementType {
	for _, rule := range labelRules {
		if rule.pattern.MatchString(label) {
			return rule.typ
		}
	}
	return domain.TypeUnknown
}
