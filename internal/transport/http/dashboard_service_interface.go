package http

import (
	"context"
	"time"

	"shoppulse/internal/analytics"
	"shoppulse/internal/dataset"
)

// DashboardServiceInterface defines the contract the handlers need from the
// service layer. Interface-driven for testability.
type DashboardServiceInterface interface {
	GetSummary(ctx context.Context, start, end time.Time) (*analytics.ExecutiveSummary, error)
	GetDataQuality(ctx context.Context) (*dataset.QualityReport, error)
	DateRange(ctx context.Context) (min, max time.Time, err error)
}
