package analytics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// Operations computes fulfillment and cancellation rates over ALL orders in
// the set, canceled included. Counts are at order grain: an order with five
// items is still one order.
func Operations(set dataset.MasterSet) OperationsMetrics {
	statusByOrder := make(map[string]string, len(set))
	for _, rec := range set {
		statusByOrder[rec.OrderID] = rec.Status
	}

	var delivered, canceled int
	statusCounts := make(map[string]int)
	for _, status := range statusByOrder {
		statusCounts[status]++
		switch status {
		case dataset.StatusDelivered:
			delivered++
		case dataset.StatusCanceled, dataset.StatusReturned:
			canceled++
		}
	}

	metrics := OperationsMetrics{
		TotalOrders:     len(statusByOrder),
		DeliveredOrders: delivered,
		CanceledOrders:  canceled,
	}

	if metrics.TotalOrders > 0 {
		metrics.FulfillmentRate = Defined(float64(delivered) / float64(metrics.TotalOrders))
		metrics.CancellationRate = Defined(float64(canceled) / float64(metrics.TotalOrders))
	}

	for status, count := range statusCounts {
		metrics.StatusDistribution = append(metrics.StatusDistribution, StatusCount{
			Status: status,
			Orders: count,
		})
	}
	sort.Slice(metrics.StatusDistribution, func(i, j int) bool {
		a, b := metrics.StatusDistribution[i], metrics.StatusDistribution[j]
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.Status < b.Status
	})

	return metrics
}
