package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sizeshop/backend/internal/domain"
)

func keysOf(measurements []domain.DetectedMeasurement) []domain.MeasurementKey {
	keys := make([]domain.MeasurementKey, 0, len(measurements))
	for _, m := range measurements {
		keys = append(keys, m.Key())
	}
	return keys
}

func TestExtractFromText_ShoulderAndWaist(t *testing.T) {
	got := ExtractFromText("Shoulder Width: 45cm, Waist 80 cm")

	assert.ElementsMatch(t, []domain.MeasurementKey{
		{Type: domain.TypeShoulder, Value: 45, Unit: domain.UnitCentimeter},
		{Type: domain.TypeWaist, Value: 80, Unit: domain.UnitCentimeter},
	}, keysOf(got))
}

func TestExtractFromText_RejectsImplausible(t *testing.T) {
	assert.Empty(t, ExtractFromText("Chest: 9999cm"))
}

func TestExtractFromText_DeduplicatesRepeatedMatches(t *testing.T) {
	got := ExtractFromText("Chest: 100cm ... Chest: 100cm")

	require.Len(t, got, 1)
	assert.Equal(t, domain.MeasurementKey{Type: domain.TypeChest, Value: 100, Unit: domain.UnitCentimeter}, got[0].Key())
}

func TestExtractFromText_DeduplicatesAcrossPatterns(t *testing.T) {
	// chest and bust patterns both produce chest/96/cm; the chest match wins
	got := ExtractFromText("Bust: 96cm Chest: 96cm")

	require.Len(t, got, 1)
	assert.Equal(t, "Chest: 96cm", got[0].Text)
}

func TestExtractFromText_Fields(t *testing.T) {
	got := ExtractFromText("Product details. Chest: 100cm. Machine wash.")

	require.Len(t, got, 1)
	m := got[0]
	assert.Equal(t, "Chest: 100cm", m.Text)
	assert.Equal(t, 100.0, m.Value)
	assert.Equal(t, domain.UnitCentimeter, m.Unit)
	assert.Equal(t, domain.TypeChest, m.Type)
	assert.InDelta(t, 1.0, m.Confidence, 1e-9)
	assert.Nil(t, m.Size)
}

func TestExtractFromText_Cases(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []domain.MeasurementKey
	}{
		{
			name: "inches",
			text: "Chest 40 inch",
			want: []domain.MeasurementKey{{Type: domain.TypeChest, Value: 40, Unit: domain.UnitInch}},
		},
		{
			name: "decimal value",
			text: "Inseam: 81.5 cm",
			want: []domain.MeasurementKey{{Type: domain.TypeInseam, Value: 81.5, Unit: domain.UnitCentimeter}},
		},
		{
			name: "inside leg",
			text: "inside leg 32in",
			want: []domain.MeasurementKey{{Type: domain.TypeInseam, Value: 32, Unit: domain.UnitInch}},
		},
		{
			name: "across shoulder",
			text: "ACROSS SHOULDER: 44 cm",
			want: []domain.MeasurementKey{{Type: domain.TypeShoulder, Value: 44, Unit: domain.UnitCentimeter}},
		},
		{
			name: "arm length",
			text: "Arm length 62cm",
			want: []domain.MeasurementKey{
				{Type: domain.TypeSleeve, Value: 62, Unit: domain.UnitCentimeter},
				{Type: domain.TypeLength, Value: 62, Unit: domain.UnitCentimeter},
			},
		},
		{
			name: "sleeve length also reads as length",
			text: "Sleeve Length: 62cm",
			want: []domain.MeasurementKey{
				{Type: domain.TypeSleeve, Value: 62, Unit: domain.UnitCentimeter},
				{Type: domain.TypeLength, Value: 62, Unit: domain.UnitCentimeter},
			},
		},
		{
			name: "centimeters spelled out",
			text: "Waist: 76 centimeters",
			want: []domain.MeasurementKey{{Type: domain.TypeWaist, Value: 76, Unit: domain.UnitCentimeter}},
		},
		{
			name: "label without unit is ignored",
			text: "Chest: 100",
			want: []domain.MeasurementKey{},
		},
		{
			name: "label without number is ignored",
			text: "Chest: see size chart",
			want: []domain.MeasurementKey{},
		},
		{
			name: "quote unit defaults to cm and fails the chest range",
			text: `Chest: 40"`,
			want: []domain.MeasurementKey{},
		},
		{
			name: "empty text",
			text: "",
			want: []domain.MeasurementKey{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, keysOf(ExtractFromText(tt.text)))
		})
	}
}

func TestExtractFromText_PatternOrder(t *testing.T) {
	got := ExtractFromText("Waist: 80cm Chest: 100cm Chest: 104cm")

	assert.Equal(t, []domain.MeasurementKey{
		{Type: domain.TypeChest, Value: 100, Unit: domain.UnitCentimeter},
		{Type: domain.TypeChest, Value: 104, Unit: domain.UnitCentimeter},
		{Type: domain.TypeWaist, Value: 80, Unit: domain.UnitCentimeter},
	}, keysOf(got))
}

func TestExtractFromText_QuoteAsInch(t *testing.T) {
	got := extractFromText(`Chest: 40"`, true)

	require.Len(t, got, 1)
	assert.Equal(t, domain.UnitInch, got[0].Unit)
	assert.Equal(t, 40.0, got[0].Value)
}

func TestPatterns_ReturnsCopy(t *testing.T) {
	patterns := Patterns()
	require.Len(t, patterns, len(measurementPatterns))

	patterns[0].Type = domain.TypeUnknown
	assert.Equal(t, domain.TypeChest, measurementPatterns[0].Type)
}
