// Package detection finds clothing measurements in product pages.
//
// Three strategies run on every page: regex scanning of the text inside
// site-specific regions, structural parsing of HTML tables, and regex
// scanning of the whole page text. Their candidates are merged by
// (type, value, unit), keeping the most confident one, and ranked.
package detection

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sizeshop/backend/internal/domain"
)

// Options configures a Detector
type Options struct {
	// QuoteAsInch maps a bare `"` unit in text matches to inches instead of
	// the default centimeters.
	QuoteAsInch bool
	Logger      *zap.Logger
}

// Detector runs the detection strategies. It holds no per-call state and is
// safe for concurrent use.
type Detector struct {
	quoteAsInch bool
	logger      *zap.Logger
}

// Report is a detection result with per-strategy counts
type Report struct {
	Profile      string
	SiteCount    int
	TableCount   int
	PageCount    int
	Measurements []domain.DetectedMeasurement
}

// NewDetector creates a detector
func NewDetector(opts Options) *Detector {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		quoteAsInch: opts.QuoteAsInch,
		logger:      logger.Named("detection"),
	}
}

// Detect returns the measurements found in doc, most confident first
func (d *Detector) Detect(doc Document, rawURL string) []domain.DetectedMeasurement {
	return d.DetectWithReport(doc, rawURL).Measurements
}

// DetectWithReport is Detect plus the counts each strategy produced
func (d *Detector) DetectWithReport(doc Document, rawURL string) Report {
	route, err := RouteURL(rawURL)
	if err != nil {
		d.logger.Debug("falling back to generic selectors", zap.String("url", rawURL), zap.Error(err))
	}

	site := extractFromText(ScopedText(doc, route.Selectors), d.quoteAsInch)
	tables := ExtractFromTables(doc.Tables())
	page := extractFromText(doc.BodyText(), d.quoteAsInch)

	merged := Merge(site, tables, page)

	d.logger.Debug("detection finished",
		zap.String("profile", route.Profile),
		zap.Int("site", len(site)),
		zap.Int("tables", len(tables)),
		zap.Int("page", len(page)),
		zap.Int("merged", len(merged)),
	)

	return Report{
		Profile:      route.Profile,
		SiteCount:    len(site),
		TableCount:   len(tables),
		PageCount:    len(page),
		Measurements: merged,
	}
}

// Detect runs a default detector over doc
func Detect(doc Document, rawURL string) []domain.DetectedMeasurement {
	return NewDetector(Options{}).Detect(doc, rawURL)
}

// Merge combines candidate groups in order. Candidates sharing a key are
// collapsed into the one with strictly higher confidence; on a tie the
// earlier one stays, in its original position. The result is sorted by
// descending confidence, keeping insertion order among equal confidences.
func Merge(groups ...[]domain.DetectedMeasurement) []domain.DetectedMeasurement {
	index := make(map[domain.MeasurementKey]int)
	merged := make([]domain.DetectedMeasurement, 0)

	for _, group := range groups {
		for _, m := range group {
			key := m.Key()
			if i, ok := index[key]; ok {
				if m.Confidence > merged[i].Confidence {
					merged[i] = m
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, m)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged
}
