package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoppulse/internal/dataset"
)

func TestOperations(t *testing.T) {
	set := dataset.MasterSet{
		row("o1", "2017-01-05", 100, 10, dataset.StatusDelivered),
		row("o1", "2017-01-05", 40, 4, dataset.StatusDelivered), // same order, second item
		row("o2", "2017-01-06", 50, 5, dataset.StatusDelivered),
		row("o3", "2017-01-07", 30, 3, dataset.StatusCanceled),
		row("o4", "2017-01-08", 20, 2, dataset.StatusReturned),
		row("o5", "2017-01-09", 10, 1, "shipped"),
	}

	m := Operations(set)

	// Order grain: o1 counts once despite two items
	assert.Equal(t, 5, m.TotalOrders)
	assert.Equal(t, 2, m.DeliveredOrders)
	assert.Equal(t, 2, m.CanceledOrders)

	require.True(t, m.FulfillmentRate.Defined)
	assert.InDelta(t, 0.4, m.FulfillmentRate.Value, 1e-9)
	require.True(t, m.CancellationRate.Defined)
	assert.InDelta(t, 0.4, m.CancellationRate.Value, 1e-9)

	// Distribution sorted by count desc, then status asc
	require.Len(t, m.StatusDistribution, 4)
	assert.Equal(t, StatusCount{Status: "delivered", Orders: 2}, m.StatusDistribution[0])
	assert.Equal(t, StatusCount{Status: "canceled", Orders: 1}, m.StatusDistribution[1])
	assert.Equal(t, StatusCount{Status: "returned", Orders: 1}, m.StatusDistribution[2])
	assert.Equal(t, StatusCount{Status: "shipped", Orders: 1}, m.StatusDistribution[3])
}

func TestOperationsEmptySet(t *testing.T) {
	m := Operations(nil)
	assert.Equal(t, 0, m.TotalOrders)
	assert.False(t, m.FulfillmentRate.Defined)
	assert.False(t, m.CancellationRate.Defined)
	assert.Empty(t, m.StatusDistribution)
}

func TestOperationsIncludesCanceled(t *testing.T) {
	// All canceled: rates are defined, not undefined
	set := dataset.MasterSet{
		row("o1", "2017-01-05", 100, 10, dataset.StatusCanceled),
		row("o2", "2017-01-06", 50, 5, dataset.StatusCanceled),
	}

	m := Operations(set)
	assert.Equal(t, 2, m.TotalOrders)
	require.True(t, m.CancellationRate.Defined)
	assert.InDelta(t, 1.0, m.CancellationRate.Value, 1e-9)
	require.True(t, m.FulfillmentRate.Defined)
	assert.InDelta(t, 0.0, m.FulfillmentRate.Value, 1e-9)
}
