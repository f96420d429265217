package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shoppulse/internal/analytics"
	"shoppulse/internal/config"
	"shoppulse/internal/dataset"
)

// tracer instruments the pipeline stages
var tracer = otel.Tracer("shoppulse/services")

// DashboardService owns the master record set and exposes the two query
// operations the rendering layer needs. The master set is built once per
// load and read-only afterward; Reload swaps it atomically.
type DashboardService struct {
	cfg        *config.Config
	logger     *slog.Logger
	loader     *dataset.Loader
	builder    *dataset.Builder
	summarizer *analytics.Summarizer

	mu      sync.RWMutex
	master  dataset.MasterSet
	quality *dataset.QualityReport
}

// NewDashboardService creates the service without loading data.
// Call Reload to build the master dataset.
func NewDashboardService(cfg *config.Config, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	opts := analytics.Options{
		TopCategories: cfg.Analytics.TopCategories,
		TopCities:     cfg.Analytics.TopCities,
	}

	return &DashboardService{
		cfg:        cfg,
		logger:     logger,
		loader:     dataset.NewLoader(cfg.Paths.DataDir, logger),
		builder:    dataset.NewBuilder(cfg.Analytics.ReviewDedupe, logger),
		summarizer: analytics.NewSummarizer(opts, logger),
	}
}

// Reload loads the raw tables and rebuilds the master dataset. The previous
// dataset keeps serving queries until the new one is ready.
func (s *DashboardService) Reload(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "dashboard.reload")
	defer span.End()

	start := time.Now()

	tables, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	master, quality, err := s.builder.Build(ctx, tables)
	if err != nil {
		return fmt.Errorf("build master dataset: %w", err)
	}

	s.mu.Lock()
	s.master = master
	s.quality = quality
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("master_rows", len(master)))

	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.Int("master_rows", len(master)),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

// GetSummary computes the executive summary for the inclusive date range.
// The comparison window is derived automatically; the rendering layer never
// touches the master set directly.
func (s *DashboardService) GetSummary(ctx context.Context, start, end time.Time) (*analytics.ExecutiveSummary, error) {
	ctx, span := tracer.Start(ctx, "dashboard.get_summary", trace.WithAttributes(
		attribute.String("start", start.Format("2006-01-02")),
		attribute.String("end", end.Format("2006-01-02")),
	))
	defer span.End()

	boundary, err := analytics.NewBoundary(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateRange, err)
	}

	s.mu.RLock()
	master := s.master
	s.mu.RUnlock()

	if master == nil {
		return nil, ErrDataNotLoaded
	}

	summary, err := s.summarizer.Summarize(ctx, master, boundary)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	return summary, nil
}

// GetDataQuality returns the join diagnostics of the last build
func (s *DashboardService) GetDataQuality(ctx context.Context) (*dataset.QualityReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.quality == nil {
		return nil, ErrDataNotLoaded
	}
	return s.quality, nil
}

// DateRange reports the purchase date span of the loaded dataset
func (s *DashboardService) DateRange(ctx context.Context) (min, max time.Time, err error) {
	s.mu.RLock()
	master := s.master
	s.mu.RUnlock()

	if master == nil {
		return time.Time{}, time.Time{}, ErrDataNotLoaded
	}

	min, max, ok := master.DateRange()
	if !ok {
		return time.Time{}, time.Time{}, ErrDataNotLoaded
	}
	return min, max, nil
}
