package analytics

import (
	"sort"

	"shoppulse/internal/dataset"
)

// Geography computes revenue and order counts grouped by customer state,
// plus the top revenue cities. Rows without customer geography (failed
// customer join) are skipped; the quality report accounts for them.
func Geography(set dataset.MasterSet, topCities int) GeographyMetrics {
	rows := qualifying(set)
	if topCities <= 0 {
		topCities = DefaultOptions().TopCities
	}

	type stateAgg struct {
		revenue float64
		orders  map[string]struct{}
	}
	byState := make(map[string]*stateAgg)
	byCity := make(map[[2]string]float64)
	var totalRevenue float64

	for _, rec := range rows {
		if rec.State == "" {
			continue
		}
		a, ok := byState[rec.State]
		if !ok {
			a = &stateAgg{orders: make(map[string]struct{})}
			byState[rec.State] = a
		}
		a.revenue += rec.TotalValue()
		a.orders[rec.OrderID] = struct{}{}
		totalRevenue += rec.TotalValue()

		byCity[[2]string{rec.State, rec.City}] += rec.TotalValue()
	}

	states := make([]StateStat, 0, len(byState))
	for state, a := range byState {
		stat := StateStat{
			State:   state,
			Revenue: a.revenue,
			Orders:  len(a.orders),
		}
		if stat.Orders > 0 {
			stat.AvgOrderValue = a.revenue / float64(stat.Orders)
		}
		if totalRevenue > 0 {
			stat.RevenueShare = a.revenue / totalRevenue
		}
		states = append(states, stat)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Revenue != states[j].Revenue {
			return states[i].Revenue > states[j].Revenue
		}
		return states[i].State < states[j].State
	})

	cities := make([]CityStat, 0, len(byCity))
	for key, revenue := range byCity {
		cities = append(cities, CityStat{State: key[0], City: key[1], Revenue: revenue})
	}
	sort.Slice(cities, func(i, j int) bool {
		if cities[i].Revenue != cities[j].Revenue {
			return cities[i].Revenue > cities[j].Revenue
		}
		if cities[i].State != cities[j].State {
			return cities[i].State < cities[j].State
		}
		return cities[i].City < cities[j].City
	})

	metrics := GeographyMetrics{
		States:      states,
		TotalStates: len(byState),
		TotalCities: len(byCity),
	}
	if len(cities) > topCities {
		cities = cities[:topCities]
	}
	metrics.TopCities = cities

	return metrics
}
