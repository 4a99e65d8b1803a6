package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sizeshop/backend/internal/domain"
)

func measurement(t domain.MeasurementType, value float64, confidence float64, text string) domain.DetectedMeasurement {
	return domain.DetectedMeasurement{
		Text:       text,
		Value:      value,
		Unit:       domain.UnitCentimeter,
		Type:       t,
		Confidence: confidence,
	}
}

func TestMerge_HigherConfidenceWins(t *testing.T) {
	size := "M"
	fromTable := measurement(domain.TypeChest, 100, 0.9, "Chest: 100cm")
	fromTable.Size = &size
	fromText := measurement(domain.TypeChest, 100, 0.6, "chest 100cm")

	got := Merge([]domain.DetectedMeasurement{fromText}, []domain.DetectedMeasurement{fromTable})

	require.Len(t, got, 1)
	assert.Equal(t, 0.9, got[0].Confidence)
	assert.Equal(t, "M", got[0].SizeLabel())
}

func TestMerge_TieKeepsFirstInserted(t *testing.T) {
	first := measurement(domain.TypeWaist, 80, 0.8, "first")
	second := measurement(domain.TypeWaist, 80, 0.8, "second")

	got := Merge([]domain.DetectedMeasurement{first}, []domain.DetectedMeasurement{second})

	require.Len(t, got, 1)
	assert.Equal(t, "first", got[0].Text)
}

func TestMerge_SortsByConfidenceStable(t *testing.T) {
	got := Merge(
		[]domain.DetectedMeasurement{
			measurement(domain.TypeWaist, 80, 0.6, "a"),
			measurement(domain.TypeChest, 100, 0.9, "b"),
		},
		[]domain.DetectedMeasurement{
			measurement(domain.TypeLength, 70, 0.6, "c"),
			measurement(domain.TypeSleeve, 60, 1.0, "d"),
		},
	)

	texts := make([]string, len(got))
	for i, m := range got {
		texts[i] = m.Text
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, texts)
}

func TestMerge_ReplacementKeepsInsertionSlot(t *testing.T) {
	got := Merge(
		[]domain.DetectedMeasurement{
			measurement(domain.TypeWaist, 80, 0.6, "waist-low"),
			measurement(domain.TypeChest, 100, 0.7, "chest"),
		},
		[]domain.DetectedMeasurement{
			measurement(domain.TypeWaist, 80, 0.7, "waist-high"),
		},
	)

	require.Len(t, got, 2)
	assert.Equal(t, "waist-high", got[0].Text)
	assert.Equal(t, "chest", got[1].Text)
}

func TestMerge_Empty(t *testing.T) {
	got := Merge(nil, nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func sizeChartDocument() *fakeDocument {
	return &fakeDocument{
		body: "Dri-FIT Tee\nShoulder Width: 45cm, Waist 80 cm\nSize Chest\nM 96cm",
		tables: []Table{{Rows: []Row{
			headerRow("Size", "Chest"),
			dataRow("M", "96cm"),
		}}},
		selectors: map[string]string{
			".size-chart": "Chest: 96cm Waist: 80cm",
		},
	}
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetector(Options{Logger: zap.NewNop()})

	got := d.Detect(sizeChartDocument(), "https://www.nike.com/t/dri-fit-tee")

	assert.ElementsMatch(t, []domain.MeasurementKey{
		{Type: domain.TypeChest, Value: 96, Unit: domain.UnitCentimeter},
		{Type: domain.TypeWaist, Value: 80, Unit: domain.UnitCentimeter},
		{Type: domain.TypeShoulder, Value: 45, Unit: domain.UnitCentimeter},
	}, keysOf(got))

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Confidence, got[i].Confidence, "results must be sorted by confidence")
	}
	for _, m := range got {
		assert.NotEqual(t, domain.TypeUnknown, m.Type)
		assert.GreaterOrEqual(t, m.Confidence, 0.0)
		assert.LessOrEqual(t, m.Confidence, 1.0)
	}
}

func TestDetector_DetectWithReport(t *testing.T) {
	d := NewDetector(Options{})

	report := d.DetectWithReport(sizeChartDocument(), "https://www.nike.com/t/dri-fit-tee")

	assert.Equal(t, "nike", report.Profile)
	assert.Equal(t, 2, report.SiteCount)
	assert.Equal(t, 1, report.TableCount)
	assert.Equal(t, 2, report.PageCount)
	assert.Len(t, report.Measurements, 3)
}

func TestDetector_Idempotent(t *testing.T) {
	d := NewDetector(Options{})
	doc := sizeChartDocument()

	first := d.Detect(doc, "https://www.nike.com/t/dri-fit-tee")
	second := d.Detect(doc, "https://www.nike.com/t/dri-fit-tee")

	confidences := func(ms []domain.DetectedMeasurement) map[domain.MeasurementKey]float64 {
		out := make(map[domain.MeasurementKey]float64, len(ms))
		for _, m := range ms {
			out[m.Key()] = m.Confidence
		}
		return out
	}
	assert.Equal(t, confidences(first), confidences(second))
}

func TestDetector_MalformedURLUsesGenericSelectors(t *testing.T) {
	doc := &fakeDocument{
		selectors: map[string]string{"table": "Inseam: 80cm"},
	}

	got := Detect(doc, "::not a url::")

	require.Len(t, got, 1)
	assert.Equal(t, domain.TypeInseam, got[0].Type)
	assert.Equal(t, genericProfile.Selectors, doc.queried)
}

func TestDetector_NothingFound(t *testing.T) {
	doc := &fakeDocument{body: "Free shipping on orders over $50. SKU 123456."}

	got := Detect(doc, "https://shop.example.com/p/1")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetector_PageTextOverridesWeakerTableMatch(t *testing.T) {
	doc := &fakeDocument{
		body: "Waist 80cm",
		tables: []Table{{Rows: []Row{
			headerRow("Detail", "Value"),
			dataRow("Waist", "80"),
		}}},
	}

	got := Detect(doc, "https://shop.example.com/p/1")

	require.Len(t, got, 1)
	assert.InDelta(t, 0.9, got[0].Confidence, 1e-9)
	assert.Equal(t, "Waist 80cm", got[0].Text)
}

func TestDetector_TableOnlyMatch(t *testing.T) {
	doc := &fakeDocument{
		body: "waist 80",
		tables: []Table{{Rows: []Row{
			headerRow("Detail", "Value"),
			dataRow("Waist", "80"),
		}}},
	}

	got := Detect(doc, "https://shop.example.com/p/1")

	require.Len(t, got, 1)
	assert.Equal(t, labelValuePairScore, got[0].Confidence)
	assert.Equal(t, "waist: 80", got[0].Text)
}

func TestDetector_QuoteAsInch(t *testing.T) {
	doc := &fakeDocument{body: `Chest: 40"`}

	assert.Empty(t, NewDetector(Options{}).Detect(doc, "https://shop.example.com"))

	got := NewDetector(Options{QuoteAsInch: true}).Detect(doc, "https://shop.example.com")
	require.Len(t, got, 1)
	assert.Equal(t, domain.UnitInch, got[0].Unit)
}

func TestDetector_TableKeepsSizeOverCapitalizedUnitText(t *testing.T) {
	doc := &fakeDocument{
		selectors: map[string]string{".product-info": "Chest 40 Inch"},
		tables: []Table{{Rows: []Row{
			headerRow("Size", "Chest"),
			dataRow("M", "40 inch"),
		}}},
	}

	got := Detect(doc, "https://www.nike.com/t/tee")

	require.Len(t, got, 1)
	assert.Equal(t, domain.UnitInch, got[0].Unit)
	assert.InDelta(t, typedColumnScore, got[0].Confidence, 1e-9)
	assert.Equal(t, "M", got[0].SizeLabel())
	assert.Equal(t, "Chest: 40 inch", got[0].Text)
}
