package analytics

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ratio is a numeric result whose denominator may be absent. An undefined
// ratio marshals to JSON null so sparse data never turns into a zero that
// looks like a real measurement.
type Ratio struct {
	Value   float64
	Defined bool
}

// Defined wraps a computed value
func Defined(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// Undefined is the sentinel for ratios with a zero or absent denominator
var Undefined = Ratio{}

// MarshalJSON renders undefined ratios as null
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts null as the undefined sentinel
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Defined(v)
	return nil
}

// growthRatio computes relative growth against a previous value.
// Undefined when the previous value is zero or negative.
func growthRatio(current, previous float64) Ratio {
	if previous <= 0 {
		return Undefined
	}
	return Defined((current - previous) / previous)
}

// Boundary is an inclusive calendar date range used to select records by
// order purchase date.
type Boundary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewBoundary builds a boundary from inclusive start and end dates.
// Times of day are truncated; start must not be after end.
func NewBoundary(start, end time.Time) (Boundary, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return Boundary{}, fmt.Errorf("invalid boundary: start %s after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Boundary{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the boundary. The end date is
// inclusive for the whole calendar day.
func (b Boundary) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End.AddDate(0, 0, 1))
}

// Previous returns the immediately preceding boundary of identical length:
// it ends the day before this one starts.
func (b Boundary) Previous() Boundary {
	spanDays := int(b.End.Sub(b.Start).Hours() / 24)
	end := b.Start.AddDate(0, 0, -1)
	return Boundary{Start: end.AddDate(0, 0, -spanDays), End: end}
}

// Days returns the boundary length in calendar days
func (b Boundary) Days() int {
	return int(b.End.Sub(b.Start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Options holds the configurable knobs of the metric catalog
type Options struct {
	TopCategories int
	TopCities     int
}

// DefaultOptions returns the default metric catalog configuration
func DefaultOptions() Options {
	return Options{
		TopCategories: 10,
		TopCities:     20,
	}
}

// MonthlyRevenue is one point of the monthly revenue trend
type MonthlyRevenue struct {
	Month   string  `json:"month"` // "2006-01"
	Revenue float64 `json:"revenue"`
}

// RevenueMetrics is the revenue metric family
type RevenueMetrics struct {
	TotalRevenue  float64          `json:"total_revenue"`
	TotalOrders   int              `json:"total_orders"`
	TotalItems    int              `json:"total_items"`
	AvgOrderValue float64          `json:"average_order_value"`
	AvgItemPrice  float64          `json:"average_item_price"`
	MonthlyTrend  []MonthlyRevenue `json:"monthly_trend,omitempty"`
	RevenueGrowth Ratio            `json:"revenue_growth"`
	OrderGrowth   Ratio            `json:"order_growth"`
	AOVGrowth     Ratio            `json:"aov_growth"`
}

// CategoryStat is per-category performance
type CategoryStat struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Items        int     `json:"items"`
	AvgItemPrice float64 `json:"average_item_price"`
	RevenueShare float64 `json:"revenue_share"`
}

// ProductMetrics is the product metric family
type ProductMetrics struct {
	TopCategories   []CategoryStat `json:"top_categories"`
	TotalCategories int            `json:"total_categories"`
	TotalProducts   int            `json:"total_products"`
}

// StateStat is per-state performance
type StateStat struct {
	State         string  `json:"state"`
	Revenue       float64 `json:"revenue"`
	Orders        int     `json:"orders"`
	AvgOrderValue float64 `json:"average_order_value"`
	RevenueShare  float64 `json:"revenue_share"`
}

// CityStat is per-city performance
type CityStat struct {
	State   string  `json:"state"`
	City    string  `json:"city"`
	Revenue float64 `json:"revenue"`
}

// GeographyMetrics is the geographic metric family
type GeographyMetrics struct {
	States      []StateStat `json:"states"`
	TopCities   []CityStat  `json:"top_cities"`
	TotalStates int         `json:"total_states"`
	TotalCities int         `json:"total_cities"`
}

// DeliveryBucket groups delivery times into display ranges
type DeliveryBucket struct {
	Label          string `json:"label"`
	Count          int    `json:"count"`
	AvgReviewScore Ratio  `json:"average_review_score"`
}

// ExperienceMetrics is the customer experience metric family
type ExperienceMetrics struct {
	AvgReviewScore     Ratio            `json:"average_review_score"`
	ReviewCount        int              `json:"review_count"`
	ReviewRate         Ratio            `json:"review_rate"`
	ReviewDistribution map[int]int      `json:"review_distribution"`
	AvgDeliveryDays    Ratio            `json:"average_delivery_days"`
	MedianDeliveryDays Ratio            `json:"median_delivery_days"`
	DeliveryBuckets    []DeliveryBucket `json:"delivery_buckets"`
	ScoreDeliveryCorr  Ratio            `json:"score_delivery_correlation"`
}

// StatusCount is one entry of the order status distribution
type StatusCount struct {
	Status string `json:"status"`
	Orders int    `json:"orders"`
}

// OperationsMetrics is the operational metric family. Unlike the other
// families it counts canceled orders too: these rates measure process
// health, not revenue.
type OperationsMetrics struct {
	TotalOrders        int           `json:"total_orders"`
	DeliveredOrders    int           `json:"delivered_orders"`
	CanceledOrders     int           `json:"canceled_orders"`
	FulfillmentRate    Ratio         `json:"fulfillment_rate"`
	CancellationRate   Ratio         `json:"cancellation_rate"`
	StatusDistribution []StatusCount `json:"status_distribution"`
}

// ExecutiveSummary merges all metric families for one period plus the
// growth comparison against the automatically derived preceding period.
type ExecutiveSummary struct {
	Period        Boundary          `json:"period"`
	Comparison    Boundary          `json:"comparison"`
	HasComparison bool              `json:"has_comparison"`
	Revenue       RevenueMetrics    `json:"revenue"`
	Products      ProductMetrics    `json:"products"`
	Geography     GeographyMetrics  `json:"geography"`
	Experience    ExperienceMetrics `json:"experience"`
	Operations    OperationsMetrics `json:"operations"`
}
