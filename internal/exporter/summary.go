package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"shoppulse/internal/analytics"
)

// SummaryExporter writes an executive summary to report files. Each export
// run produces a set of CSV tables plus one Excel workbook, all sharing a
// unique report ID in their file names so runs never overwrite each other.
type SummaryExporter struct {
	csv    *CSVWriter
	outDir string
	logger *slog.Logger
}

// NewSummaryExporter creates a summary exporter rooted at outDir
func NewSummaryExporter(outDir string, logger *slog.Logger) *SummaryExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryExporter{
		csv:    NewCSVWriter(outDir, logger),
		outDir: outDir,
		logger: logger.With(slog.String("component", "summary_exporter")),
	}
}

// ExportResult lists the files one export run produced
type ExportResult struct {
	ReportID string
	CSVFiles []string
	Workbook string
}

// Export writes the summary tables to CSV files and one Excel workbook.
// Returns the paths of everything written.
func (e *SummaryExporter) Export(summary *analytics.ExecutiveSummary) (*ExportResult, error) {
	reportID := uuid.New().String()[:8]
	period := summary.Period.Start.Format("2006-01-02") + "_" + summary.Period.End.Format("2006-01-02")
	prefix := fmt.Sprintf("summary_%s_%s", period, reportID)

	result := &ExportResult{ReportID: reportID}

	tables := e.buildTables(summary)
	for _, t := range tables {
		fileName := fmt.Sprintf("%s_%s.csv", prefix, t.name)
		if err := e.csv.WriteSimpleCSV(fileName, t.headers, t.records); err != nil {
			return nil, fmt.Errorf("failed to export %s table: %w", t.name, err)
		}
		result.CSVFiles = append(result.CSVFiles, filepath.Join(e.outDir, fileName))
	}

	workbook := filepath.Join(e.outDir, prefix+".xlsx")
	if err := e.writeWorkbook(workbook, tables); err != nil {
		return nil, fmt.Errorf("failed to export workbook: %w", err)
	}
	result.Workbook = workbook

	e.logger.Info("Summary exported",
		slog.String("report_id", reportID),
		slog.Int("csv_files", len(result.CSVFiles)),
		slog.String("workbook", workbook))

	return result, nil
}

// summaryTable is one exportable table of the executive summary
type summaryTable struct {
	name    string
	sheet   string
	headers []string
	records [][]string
}

func (e *SummaryExporter) buildTables(s *analytics.ExecutiveSummary) []summaryTable {
	return []summaryTable{
		e.revenueTable(s),
		e.monthlyTable(s),
		e.categoriesTable(s),
		e.statesTable(s),
		e.citiesTable(s),
		e.experienceTable(s),
		e.operationsTable(s),
	}
}

func (e *SummaryExporter) revenueTable(s *analytics.ExecutiveSummary) summaryTable {
	rev := s.Revenue
	return summaryTable{
		name:    "revenue",
		sheet:   "Revenue",
		headers: []string{"Metric", "Value"},
		records: [][]string{
			{"Period Start", s.Period.Start.Format("2006-01-02")},
			{"Period End", s.Period.End.Format("2006-01-02")},
			{"Total Revenue", formatMoney(rev.TotalRevenue)},
			{"Total Orders", strconv.Itoa(rev.TotalOrders)},
			{"Total Items", strconv.Itoa(rev.TotalItems)},
			{"Average Order Value", formatMoney(rev.AvgOrderValue)},
			{"Average Item Price", formatMoney(rev.AvgItemPrice)},
			{"Revenue Growth", formatRatio(rev.RevenueGrowth)},
			{"Order Growth", formatRatio(rev.OrderGrowth)},
			{"AOV Growth", formatRatio(rev.AOVGrowth)},
		},
	}
}

func (e *SummaryExporter) monthlyTable(s *analytics.ExecutiveSummary) summaryTable {
	records := make([][]string, 0, len(s.Revenue.MonthlyTrend))
	for _, m := range s.Revenue.MonthlyTrend {
		records = append(records, []string{m.Month, formatMoney(m.Revenue)})
	}
	return summaryTable{
		name:    "monthly_trend",
		sheet:   "Monthly Trend",
		headers: []string{"Month", "Revenue"},
		records: records,
	}
}

func (e *SummaryExporter) categoriesTable(s *analytics.ExecutiveSummary) summaryTable {
	records := make([][]string, 0, len(s.Products.TopCategories))
	for _, c := range s.Products.TopCategories {
		records = append(records, []string{
			c.Category,
			formatMoney(c.Revenue),
			strconv.Itoa(c.Items),
			formatMoney(c.AvgItemPrice),
			formatPercent(c.RevenueShare),
		})
	}
	return summaryTable{
		name:    "top_categories",
		sheet:   "Top Categories",
		headers: []string{"Category", "Revenue", "Items", "Average Item Price", "Revenue Share"},
		records: records,
	}
}

func (e *SummaryExporter) statesTable(s *analytics.ExecutiveSummary) summaryTable {
	records := make([][]string, 0, len(s.Geography.States))
	for _, st := range s.Geography.States {
		records = append(records, []string{
			st.State,
			formatMoney(st.Revenue),
			strconv.Itoa(st.Orders),
			formatMoney(st.AvgOrderValue),
			formatPercent(st.RevenueShare),
		})
	}
	return summaryTable{
		name:    "states",
		sheet:   "States",
		headers: []string{"State", "Revenue", "Orders", "Average Order Value", "Revenue Share"},
		records: records,
	}
}

func (e *SummaryExporter) citiesTable(s *analytics.ExecutiveSummary) summaryTable {
	records := make([][]string, 0, len(s.Geography.TopCities))
	for _, c := range s.Geography.TopCities {
		records = append(records, []string{c.State, c.City, formatMoney(c.Revenue)})
	}
	return summaryTable{
		name:    "top_cities",
		sheet:   "Top Cities",
		headers: []string{"State", "City", "Revenue"},
		records: records,
	}
}

func (e *SummaryExporter) experienceTable(s *analytics.ExecutiveSummary) summaryTable {
	exp := s.Experience
	records := [][]string{
		{"Average Review Score", formatRatio(exp.AvgReviewScore)},
		{"Review Count", strconv.Itoa(exp.ReviewCount)},
		{"Review Rate", formatRatio(exp.ReviewRate)},
		{"Average Delivery Days", formatRatio(exp.AvgDeliveryDays)},
		{"Median Delivery Days", formatRatio(exp.MedianDeliveryDays)},
		{"Score/Delivery Correlation", formatRatio(exp.ScoreDeliveryCorr)},
	}

	scores := make([]int, 0, len(exp.ReviewDistribution))
	for score := range exp.ReviewDistribution {
		scores = append(scores, score)
	}
	sort.Ints(scores)
	for _, score := range scores {
		records = append(records, []string{
			fmt.Sprintf("Reviews Scoring %d", score),
			strconv.Itoa(exp.ReviewDistribution[score]),
		})
	}

	for _, b := range exp.DeliveryBuckets {
		records = append(records, []string{
			fmt.Sprintf("Delivered in %s", b.Label),
			strconv.Itoa(b.Count),
		})
	}

	return summaryTable{
		name:    "experience",
		sheet:   "Experience",
		headers: []string{"Metric", "Value"},
		records: records,
	}
}

func (e *SummaryExporter) operationsTable(s *analytics.ExecutiveSummary) summaryTable {
	ops := s.Operations
	records := [][]string{
		{"Total Orders", strconv.Itoa(ops.TotalOrders)},
		{"Delivered Orders", strconv.Itoa(ops.DeliveredOrders)},
		{"Canceled Orders", strconv.Itoa(ops.CanceledOrders)},
		{"Fulfillment Rate", formatRatio(ops.FulfillmentRate)},
		{"Cancellation Rate", formatRatio(ops.CancellationRate)},
	}
	for _, sc := range ops.StatusDistribution {
		records = append(records, []string{
			fmt.Sprintf("Status %s", sc.Status),
			strconv.Itoa(sc.Orders),
		})
	}
	return summaryTable{
		name:    "operations",
		sheet:   "Operations",
		headers: []string{"Metric", "Value"},
		records: records,
	}
}

// writeWorkbook writes all tables into one Excel workbook, one sheet per table
func (e *SummaryExporter) writeWorkbook(path string, tables []summaryTable) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(t.sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", t.sheet, err)
			}
		}

		sw, err := f.NewStreamWriter(t.sheet)
		if err != nil {
			return fmt.Errorf("failed to create stream writer for %s: %w", t.sheet, err)
		}

		header := make([]interface{}, len(t.headers))
		for j, h := range t.headers {
			header[j] = h
		}
		if err := sw.SetRow("A1", header); err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}

		for rowIdx, record := range t.records {
			row := make([]interface{}, len(record))
			for j, v := range record {
				row[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := sw.SetRow(cell, row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx, err)
			}
		}

		if err := sw.Flush(); err != nil {
			return fmt.Errorf("failed to flush sheet %s: %w", t.sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func formatRatio(r analytics.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', 4, 64)
}
