package detection

import (
	"strings"

	"github.com/sizeshop/backend/internal/domain"
)

// ExtractFromTables reads measurements out of size-chart style tables.
//
// A table whose header row names at least one measurement column is read
// column-wise: every later row contributes one measurement per typed column,
// tagged with the row's first cell as the size label. Any other table is read
// as label/value pairs of adjacent cells, without size labels.
func ExtractFromTables(tables []Table) []domain.DetectedMeasurement {
	var measurements []domain.DetectedMeasurement
	for _, table := range tables {
		measurements = append(measurements, extractFromTable(table)...)
	}
	return measurements
}

func extractFromTable(table Table) []domain.DetectedMeasurement {
	if len(table.Rows) == 0 {
		return nil
	}

	headerIndex := 0
	for i, row := range table.Rows {
		if row.HasHeaderCell() {
			headerIndex = i
			break
		}
	}
	header := table.Rows[headerIndex]

	columnTypes := make([]domain.MeasurementType, len(header.Cells))
	typed := false
	for i, cell := range header.Cells {
		columnTypes[i] = ClassifyLabel(strings.ToLower(strings.TrimSpace(cell.Text)))
		if columnTypes[i] != domain.TypeUnknown {
			typed = true
		}
	}

	if !typed {
		return extractLabelValuePairs(table.Rows)
	}
	return extractTypedColumns(header, columnTypes, table.Rows[headerIndex+1:])
}

func extractTypedColumns(header Row, columnTypes []domain.MeasurementType, rows []Row) []domain.DetectedMeasurement {
	var measurements []domain.DetectedMeasurement

	for _, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		size := strings.TrimSpace(row.Cells[0].Text)

		for col, cell := range row.Cells {
			if col >= len(columnTypes) || columnTypes[col] == domain.TypeUnknown {
				continue
			}
			t := columnTypes[col]

			valueText := strings.TrimSpace(cell.Text)
			value, unit, ok := parseCellValue(valueText)
			if !ok || !IsPlausible(value, unit, t) {
				continue
			}

			rowSize := size
			measurements = append(measurements, domain.DetectedMeasurement{
				Text:       strings.TrimSpace(header.Cells[col].Text) + ": " + valueText,
				Value:      value,
				Unit:       unit,
				Type:       t,
				Confidence: typedColumnScore,
				Size:       &rowSize,
			})
		}
	}

	return measurements
}

func extractLabelValuePairs(rows []Row) []domain.DetectedMeasurement {
	var measurements []domain.DetectedMeasurement

	for _, row := range rows {
		for i := 0; i < len(row.Cells)-1; i++ {
			label := strings.ToLower(strings.TrimSpace(row.Cells[i].Text))
			t := ClassifyLabel(label)
			if t == domain.TypeUnknown {
				continue
			}

			valueText := strings.TrimSpace(row.Cells[i+1].Text)
			value, unit, ok := parseCellValue(valueText)
			if !ok || !IsPlausible(value, unit, t) {
				continue
			}

			measurements = append(measurements, domain.DetectedMeasurement{
				Text:       label + ": " + valueText,
				Value:      value,
				Unit:       unit,
				Type:       t,
				Confidence: labelValuePairScore,
			})
		}
	}

	return measurements
}

// parseCellValue reads the first number in a cell and its optional unit,
// defaulting to centimeters
func parseCellValue(text string) (float64, domain.Unit, bool) {
	match := cellValueRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, "", false
	}
	value, ok := parseValue(match[1])
	if !ok {
		return 0, "", false
	}
	return value, NormalizeUnit(match[2]), true
}
