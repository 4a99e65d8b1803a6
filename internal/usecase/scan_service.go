package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sizeshop/backend/internal/detection"
	"github.com/sizeshop/backend/internal/domain"
	"github.com/sizeshop/backend/internal/infrastructure/htmldoc"
	"github.com/sizeshop/backend/internal/infrastructure/monitoring"
)

// DefaultScanCacheTTL is how long the last scan of a page is kept
const DefaultScanCacheTTL = 24 * time.Hour

// ScanServiceConfig holds configuration for the scan service
type ScanServiceConfig struct {
	CacheTTL     time.Duration
	MaxHTMLBytes int
	QuoteAsInch  bool
}

// ScanService scans posted product pages and keeps the last result per page
type ScanService struct {
	cache    domain.CacheRepository
	loader   *htmldoc.Loader
	detector *detection.Detector
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	cacheTTL time.Duration
	now      func() time.Time
}

// NewScanService creates a new scan service. metrics and logger may be nil.
func NewScanService(
	cache domain.CacheRepository,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
	config ScanServiceConfig,
) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = DefaultScanCacheTTL
	}

	return &ScanService{
		cache:  cache,
		loader: htmldoc.NewLoader(config.MaxHTMLBytes),
		detector: detection.NewDetector(detection.Options{
			QuoteAsInch: config.QuoteAsInch,
			Logger:      logger,
		}),
		metrics:  metrics,
		logger:   logger.Named("scan"),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Scan detects the measurements on a page.
// Flow: validate -> parse -> detect -> group by size -> cache -> return
func (s *ScanService) Scan(ctx context.Context, request *domain.ScanRequest) (*domain.ScanResult, error) {
	if request == nil || strings.TrimSpace(request.URL) == "" || request.HTML == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()

	doc, err := s.loader.Load([]byte(request.HTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	report := s.detector.DetectWithReport(doc, request.URL)
	bySize, sizes := GroupBySize(report.Measurements)

	result := &domain.ScanResult{
		ID:                 uuid.NewString(),
		URL:                request.URL,
		SiteProfile:        report.Profile,
		Measurements:       report.Measurements,
		MeasurementsBySize: bySize,
		AvailableSizes:     sizes,
		ScannedAt:          start.UTC(),
	}

	if s.metrics != nil {
		s.metrics.RecordScan(report, s.now().Sub(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, generateCacheKey(request.URL), result, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache scan result", zap.String("url", request.URL), zap.Error(err))
		}
	}

	s.logger.Info("page scanned",
		zap.String("scan_id", result.ID),
		zap.String("profile", report.Profile),
		zap.Int("measurements", len(result.Measurements)),
		zap.Int("sizes", len(sizes)),
	)

	return result, nil
}

// LastScan returns the cached result of the most recent scan of a page
func (s *ScanService) LastScan(ctx context.Context, pageURL string) (*domain.ScanResult, error) {
	if strings.TrimSpace(pageURL) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.cache == nil {
		return nil, domain.ErrScanNotFound
	}

	data, err := s.cache.Get(ctx, generateCacheKey(pageURL))
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(err == nil)
	}
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrScanNotFound
		}
		return nil, fmt.Errorf("read scan cache: %w", err)
	}

	var result domain.ScanResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		s.logger.Warn("dropping unreadable cached scan", zap.String("url", pageURL), zap.Error(err))
		return nil, domain.ErrScanNotFound
	}
	return &result, nil
}

// Highlight marks measurement-like text in a page
func (s *ScanService) Highlight(ctx context.Context, request *domain.HighlightRequest) (*domain.HighlightResult, error) {
	if request == nil || request.HTML == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	highlighted, count, err := s.loader.Highlight([]byte(request.HTML))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}

	if s.metrics != nil {
		s.metrics.RecordHighlights(count)
	}

	return &domain.HighlightResult{HTML: highlighted, Count: count}, nil
}

// GroupBySize buckets size-tagged measurements by size. Sizes are listed in
// order of first appearance; untagged measurements are left out.
func GroupBySize(measurements []domain.DetectedMeasurement) (map[string][]domain.DetectedMeasurement, []string) {
	bySize := make(map[string][]domain.DetectedMeasurement)
	sizes := make([]string, 0)

	for _, m := range measurements {
		size := m.SizeLabel()
		if size == "" {
			continue
		}
		if _, ok := bySize[size]; !ok {
			sizes = append(sizes, size)
		}
		bySize[size] = append(bySize[size], m)
	}

	return bySize, sizes
}

// generateCacheKey creates the cache key of a page.
// Format: "scan:{normalized_url}"
func generateCacheKey(pageURL string) string {
	return "scan:" + normalizeURL(pageURL)
}

// normalizeURL lower-cases scheme and host, drops the fragment and trims a
// trailing slash. Unparseable input is only trimmed.
func normalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(trimmed, "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return strings.TrimSuffix(u.String(), "/")
}
