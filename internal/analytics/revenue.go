package analytics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// Revenue computes the revenue metric family over one record set.
// Growth ratios are attached later by the summary generator; a standalone
// call leaves them undefined.
func Revenue(set dataset.MasterSet) RevenueMetrics {
	rows := qualifying(set)

	var totalRevenue, totalPrice float64
	monthly := make(map[string]float64)

	for _, rec := range rows {
		totalRevenue += rec.TotalValue()
		totalPrice += rec.Price
		monthly[rec.PurchasedAt.Format("2006-01")] += rec.TotalValue()
	}

	orders := distinctOrders(rows)

	metrics := RevenueMetrics{
		TotalRevenue: totalRevenue,
		TotalOrders:  orders,
		TotalItems:   len(rows),
	}

	if orders > 0 {
		metrics.AvgOrderValue = totalRevenue / float64(orders)
	}
	if len(rows) > 0 {
		metrics.AvgItemPrice = totalPrice / float64(len(rows))
	}

	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		metrics.MonthlyTrend = append(metrics.MonthlyTrend, MonthlyRevenue{
			Month:   m,
			Revenue: monthly[m],
		})
	}

	return metrics
}

// withGrowth attaches period-over-period growth ratios computed against the
// comparison period. Every ratio is undefined when the comparison
// denominator is zero.
func (m RevenueMetrics) withGrowth(comparison RevenueMetrics) RevenueMetrics {
	m.RevenueGrowth = growthRatio(m.TotalRevenue, comparison.TotalRevenue)
	m.OrderGrowth = growthRatio(float64(m.TotalOrders), float64(comparison.TotalOrders))
	m.AOVGrowth = growthRatio(m.AvgOrderValue, comparison.AvgOrderValue)
	return m
}
