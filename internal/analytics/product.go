package analytics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// Products computes per-category performance ranked by revenue.
// topN limits the returned categories; totals always cover all of them.
func Products(set dataset.MasterSet, topN int) ProductMetrics {
	rows := qualifying(set)
	if topN <= 0 {
		topN = DefaultOptions().TopCategories
	}

	type agg struct {
		revenue float64
		price   float64
		items   int
	}
	byCategory := make(map[string]*agg)
	products := make(map[string]struct{})
	var totalRevenue float64

	for _, rec := range rows {
		a, ok := byCategory[rec.Category]
		if !ok {
			a = &agg{}
			byCategory[rec.Category] = a
		}
		a.revenue += rec.TotalValue()
		a.price += rec.Price
		a.items++
		totalRevenue += rec.TotalValue()
		products[rec.ProductID] = struct{}{}
	}

	stats := make([]CategoryStat, 0, len(byCategory))
	for category, a := range byCategory {
		stat := CategoryStat{
			Category: category,
			Revenue:  a.revenue,
			Items:    a.items,
		}
		if a.items > 0 {
			stat.AvgItemPrice = a.price / float64(a.items)
		}
		if totalRevenue > 0 {
			stat.RevenueShare = a.revenue / totalRevenue
		}
		stats = append(stats, stat)
	}

	// Revenue descending, category name as deterministic tie-break
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Revenue != stats[j].Revenue {
			return stats[i].Revenue > stats[j].Revenue
		}
		return stats[i].Category < stats[j].Category
	})

	metrics := ProductMetrics{
		TotalCategories: len(byCategory),
		TotalProducts:   len(products),
	}
	if len(stats) > topN {
		stats = stats[:topN]
	}
	metrics.TopCategories = stats

	return metrics
}
