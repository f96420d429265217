package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"shoppulse/internal/dataset"
)

// Summarizer assembles the metric families into one executive summary
type Summarizer struct {
	opts   Options
	logger *slog.Logger
}

// NewSummarizer creates a summarizer with the given catalog options
func NewSummarizer(opts Options, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopCategories <= 0 {
		opts.TopCategories = DefaultOptions().TopCategories
	}
	if opts.TopCities <= 0 {
		opts.TopCities = DefaultOptions().TopCities
	}
	return &Summarizer{
		opts:   opts,
		logger: logger.With(slog.String("component", "summarizer")),
	}
}

// Summarize filters the master set to the boundary plus the automatically
// derived comparison window and merges every metric family into one result.
// Deterministic: identical inputs always produce identical output.
func (s *Summarizer) Summarize(ctx context.Context, set dataset.MasterSet, boundary Boundary) (*ExecutiveSummary, error) {
	start := time.Now()

	current, comparison := SplitPeriods(set, boundary)

	s.logger.DebugContext(ctx, "split periods",
		slog.String("start", boundary.Start.Format("2006-01-02")),
		slog.String("end", boundary.End.Format("2006-01-02")),
		slog.Int("current_rows", len(current)),
		slog.Int("comparison_rows", len(comparison)),
	)

	summary := &ExecutiveSummary{
		Period:        boundary,
		Comparison:    boundary.Previous(),
		HasComparison: len(comparison) > 0,
	}

	// Families are independent and read-only over the same subset, so they
	// fan out. The comparison period only needs the revenue family.
	g, ctx := errgroup.WithContext(ctx)

	var comparisonRevenue RevenueMetrics
	g.Go(func() error {
		summary.Revenue = Revenue(current)
		return ctx.Err()
	})
	g.Go(func() error {
		if len(comparison) > 0 {
			comparisonRevenue = Revenue(comparison)
		}
		return ctx.Err()
	})
	g.Go(func() error {
		summary.Products = Products(current, s.opts.TopCategories)
		return ctx.Err()
	})
	g.Go(func() error {
		summary.Geography = Geography(current, s.opts.TopCities)
		return ctx.Err()
	})
	g.Go(func() error {
		summary.Experience = Experience(current)
		return ctx.Err()
	})
	g.Go(func() error {
		summary.Operations = Operations(current)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summarize period: %w", err)
	}

	if summary.HasComparison {
		summary.Revenue = summary.Revenue.withGrowth(comparisonRevenue)
	}

	s.logger.InfoContext(ctx, "summary generated",
		slog.Float64("total_revenue", summary.Revenue.TotalRevenue),
		slog.Int("total_orders", summary.Revenue.TotalOrders),
		slog.Bool("has_comparison", summary.HasComparison),
		slog.Duration("duration", time.Since(start)),
	)

	return summary, nil
}
