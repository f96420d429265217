package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Review dedupe policies. The raw reviews table can carry more than one
// review per order; the master set keeps exactly one.
const (
	DedupeLatest = "latest"
	DedupeFirst  = "first"
)

// Builder joins the six raw tables into the denormalized master record set
type Builder struct {
	reviewDedupe string
	logger       *slog.Logger
}

// NewBuilder creates a builder with the given review dedupe policy
func NewBuilder(reviewDedupe string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if reviewDedupe != DedupeFirst {
		reviewDedupe = DedupeLatest
	}
	return &Builder{
		reviewDedupe: reviewDedupe,
		logger:       logger.With(slog.String("component", "builder")),
	}
}

// Build joins order_items to orders (inner), products, customers, payments
// and reviews (left) into one master record per order item. No rows are
// filtered here; period selection happens downstream. The quality report
// counts what each join dropped or failed to match.
func (b *Builder) Build(ctx context.Context, tables *Tables) (MasterSet, *QualityReport, error) {
	if tables == nil {
		return nil, nil, fmt.Errorf("no tables provided")
	}
	start := time.Now()

	report := &QualityReport{
		SourceRows: map[string]int{
			"orders":      len(tables.Orders),
			"order_items": len(tables.OrderItems),
			"products":    len(tables.Products),
			"customers":   len(tables.Customers),
			"payments":    len(tables.Payments),
			"reviews":     len(tables.Reviews),
		},
	}

	ordersByID := make(map[string]Order, len(tables.Orders))
	for _, o := range tables.Orders {
		ordersByID[o.ID] = o
	}

	productsByID := make(map[string]Product, len(tables.Products))
	for _, p := range tables.Products {
		productsByID[p.ID] = p
	}

	customersByID := make(map[string]Customer, len(tables.Customers))
	for _, c := range tables.Customers {
		customersByID[c.ID] = c
	}

	// Payments aggregate to one total per order before the join
	paymentTotals := make(map[string]float64, len(tables.Payments))
	for _, p := range tables.Payments {
		paymentTotals[p.OrderID] += p.Value
	}

	reviewsByOrder := b.dedupeReviews(tables.Reviews, report)

	master := make(MasterSet, 0, len(tables.OrderItems))

	for _, item := range tables.OrderItems {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			// Inner join: an item without a known order is dropped
			report.OrphanedItems++
			continue
		}

		rec := MasterRecord{
			OrderID:     item.OrderID,
			ItemSeq:     item.ItemSeq,
			ProductID:   item.ProductID,
			CustomerID:  order.CustomerID,
			Status:      order.Status,
			PurchasedAt: order.PurchasedAt,
			Delivered:   order.Status == StatusDelivered,
			Canceled:    order.Status == StatusCanceled || order.Status == StatusReturned,
			Price:       item.Price,
			Freight:     item.Freight,
		}

		if product, ok := productsByID[item.ProductID]; ok && product.Category != "" {
			rec.Category = product.Category
		} else {
			rec.Category = "unknown"
			report.MissingProducts++
		}

		if customer, ok := customersByID[order.CustomerID]; ok {
			rec.City = customer.City
			rec.State = customer.State
		} else {
			report.MissingCustomers++
		}

		if total, ok := paymentTotals[item.OrderID]; ok {
			rec.PaymentTotal = total
		} else {
			report.MissingPayments++
		}

		if review, ok := reviewsByOrder[item.OrderID]; ok {
			score := review.Score
			rec.ReviewScore = &score
		} else {
			report.MissingReviews++
		}

		if order.DeliveredAt != nil {
			days := int(order.DeliveredAt.Sub(order.PurchasedAt).Hours() / 24)
			rec.DeliveryDays = &days
		} else {
			report.NullDeliveryDays++
		}

		master = append(master, rec)
	}

	report.MasterRows = len(master)

	b.logger.InfoContext(ctx, "built master dataset",
		slog.Int("master_rows", report.MasterRows),
		slog.Int("orphaned_items", report.OrphanedItems),
		slog.Int("missing_products", report.MissingProducts),
		slog.Int("missing_customers", report.MissingCustomers),
		slog.Int("missing_reviews", report.MissingReviews),
		slog.Duration("duration", time.Since(start)),
	)

	return master, report, nil
}

// dedupeReviews reduces the reviews table to at most one review per order.
// Policy "latest" keeps the most recent by creation date, "first" keeps the
// first row encountered.
func (b *Builder) dedupeReviews(reviews []Review, report *QualityReport) map[string]Review {
	byOrder := make(map[string]Review, len(reviews))
	for _, r := range reviews {
		existing, ok := byOrder[r.OrderID]
		if !ok {
			byOrder[r.OrderID] = r
			continue
		}
		report.DuplicateReviews++
		if b.reviewDedupe == DedupeLatest && r.CreatedAt.After(existing.CreatedAt) {
			byOrder[r.OrderID] = r
		}
	}
	return byOrder
}
