package domain

import "time"

// Unit is the canonical unit of a detected measurement
type Unit string

const (
	UnitCentimeter Unit = "cm"
	UnitInch       Unit = "inch"
)

// MeasurementType is the garment dimension a measurement describes
type MeasurementType string

const (
	TypeChest    MeasurementType = "chest"
	TypeWaist    MeasurementType = "waist"
	TypeShoulder MeasurementType = "shoulder"
	TypeSleeve   MeasurementType = "sleeve"
	TypeInseam   MeasurementType = "inseam"
	TypeLength   MeasurementType = "length"
	TypeUnknown  MeasurementType = "unknown"
)

// MeasurementTypes lists the known (non-unknown) types in classification order
var MeasurementTypes = []MeasurementType{
	TypeChest, TypeWaist, TypeShoulder, TypeSleeve, TypeInseam, TypeLength,
}

// DetectedMeasurement is one numeric measurement found on a product page
type DetectedMeasurement struct {
	Text       string          `json:"text"`
	Value      float64         `json:"value"`
	Unit       Unit            `json:"unit"`
	Type       MeasurementType `json:"type"`
	Confidence float64         `json:"confidence"` // 0-1
	Size       *string         `json:"size,omitempty"`
}

// MeasurementKey identifies a measurement for deduplication: type, value and unit
type MeasurementKey struct {
	Type  MeasurementType
	Value float64
	Unit  Unit
}

// Key returns the deduplication key of the measurement
func (m DetectedMeasurement) Key() MeasurementKey {
	return MeasurementKey{Type: m.Type, Value: m.Value, Unit: m.Unit}
}

// SizeLabel returns the size tag or "" when the measurement has none
func (m DetectedMeasurement) SizeLabel() string {
	if m.Size == nil {
		return ""
	}
	return *m.Size
}

// ScanRequest is a page posted by the extension content script
type ScanRequest struct {
	URL  string `json:"url" binding:"required"`
	HTML string `json:"html" binding:"required"`
}

// ScanResult is the outcome of scanning one page
type ScanResult struct {
	ID                 string                           `json:"id"`
	URL                string                           `json:"url"`
	SiteProfile        string                           `json:"siteProfile"`
	Measurements       []DetectedMeasurement            `json:"measurements"`
	MeasurementsBySize map[string][]DetectedMeasurement `json:"measurementsBySize"`
	AvailableSizes     []string                         `json:"availableSizes"`
	ScannedAt          time.Time                        `json:"scannedAt"`
}

// HighlightRequest asks for a highlighted copy of a page
type HighlightRequest struct {
	HTML string `json:"html" binding:"required"`
}

// HighlightResult carries the highlighted, sanitized page body
type HighlightResult struct {
	HTML  string `json:"html"`
	Count int    `json:"count"`
}
