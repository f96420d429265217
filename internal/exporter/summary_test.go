package exporter

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shoppulse/internal/analytics"
)

func sampleSummary() *analytics.ExecutiveSummary {
	period := analytics.Boundary{
		Start: time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2017, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	return &analytics.ExecutiveSummary{
		Period:        period,
		Comparison:    period.Previous(),
		HasComparison: true,
		Revenue: analytics.RevenueMetrics{
			TotalRevenue:  165,
			TotalOrders:   2,
			TotalItems:    2,
			AvgOrderValue: 82.5,
			MonthlyTrend: []analytics.MonthlyRevenue{
				{Month: "2017-02", Revenue: 165},
			},
			RevenueGrowth: analytics.Defined(0.5),
		},
		Products: analytics.ProductMetrics{
			TopCategories: []analytics.CategoryStat{
				{Category: "Toys", Revenue: 110, Items: 1, AvgItemPrice: 100, RevenueShare: 0.667},
				{Category: "Garden", Revenue: 55, Items: 1, AvgItemPrice: 50, RevenueShare: 0.333},
			},
			TotalCategories: 2,
			TotalProducts:   2,
		},
		Geography: analytics.GeographyMetrics{
			States: []analytics.StateStat{
				{State: "SP", Revenue: 165, Orders: 2, AvgOrderValue: 82.5, RevenueShare: 1},
			},
			TopCities: []analytics.CityStat{
				{State: "SP", City: "sao paulo", Revenue: 165},
			},
			TotalStates: 1,
			TotalCities: 1,
		},
		Experience: analytics.ExperienceMetrics{
			AvgReviewScore:     analytics.Defined(4.5),
			ReviewCount:        2,
			ReviewRate:         analytics.Defined(1),
			ReviewDistribution: map[int]int{4: 1, 5: 1},
			DeliveryBuckets: []analytics.DeliveryBucket{
				{Label: "1-3 days", Count: 1, AvgReviewScore: analytics.Defined(5)},
			},
		},
		Operations: analytics.OperationsMetrics{
			TotalOrders:      3,
			DeliveredOrders:  2,
			CanceledOrders:   1,
			FulfillmentRate:  analytics.Defined(2.0 / 3),
			CancellationRate: analytics.Defined(1.0 / 3),
			StatusDistribution: []analytics.StatusCount{
				{Status: "delivered", Orders: 2},
				{Status: "canceled", Orders: 1},
			},
		},
	}
}

func TestSummaryExport(t *testing.T) {
	dir := t.TempDir()
	exp := NewSummaryExporter(dir, nil)

	result, err := exp.Export(sampleSummary())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.ReportID, 8)

	// Seven CSV tables plus the workbook
	require.Len(t, result.CSVFiles, 7)
	for _, path := range result.CSVFiles {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Greater(t, info.Size(), int64(0))
		assert.Contains(t, path, result.ReportID)
	}

	require.FileExists(t, result.Workbook)
	assert.True(t, strings.HasSuffix(result.Workbook, ".xlsx"))
}

func TestSummaryExportWorkbookSheets(t *testing.T) {
	dir := t.TempDir()
	exp := NewSummaryExporter(dir, nil)

	result, err := exp.Export(sampleSummary())
	require.NoError(t, err)

	f, err := excelize.OpenFile(result.Workbook)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{
		"Revenue", "Monthly Trend", "Top Categories", "States",
		"Top Cities", "Experience", "Operations",
	}, sheets)

	rows, err := f.GetRows("Revenue")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"Metric", "Value"}, rows[0])
}

func TestSummaryExportDistinctRuns(t *testing.T) {
	dir := t.TempDir()
	exp := NewSummaryExporter(dir, nil)

	first, err := exp.Export(sampleSummary())
	require.NoError(t, err)
	second, err := exp.Export(sampleSummary())
	require.NoError(t, err)

	assert.NotEqual(t, first.ReportID, second.ReportID)
	assert.NotEqual(t, first.Workbook, second.Workbook)
}

func TestCSVWriterBOM(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteSimpleCSV("out.csv", []string{"a", "b"}, [][]string{{"1", "2"}}))

	data, err := os.ReadFile(dir + "/out.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
	assert.Contains(t, string(data), "a,b\n1,2\n")
}
