// Command summary-report computes an executive business summary for a date
// range and prints it to stdout, optionally exporting CSV and Excel report
// files.
//
// Usage:
//
//	summary-report -data ./data -start 2017-01-01 -end 2017-03-31 -out ./reports
//	summary-report -workbook ./data/dataset.xlsx -start 2017-01-01 -end 2017-03-31
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"shoppulse/internal/analytics"
	"shoppulse/internal/dataset"
	"shoppulse/internal/exporter"
)

func main() {
	var (
		dataDir  = flag.String("data", "data", "directory containing the dataset CSV files")
		workbook = flag.String("workbook", "", "Excel workbook to load instead of CSV files")
		startStr = flag.String("start", "", "period start date (YYYY-MM-DD, required)")
		endStr   = flag.String("end", "", "period end date (YYYY-MM-DD, required)")
		outDir   = flag.String("out", "", "directory to write CSV and Excel report files (optional)")
		dedupe   = flag.String("dedupe", dataset.DedupeLatest, "review dedupe policy: latest or first")
		topN     = flag.Int("top", 10, "number of top categories to report")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if err := run(*dataDir, *workbook, *startStr, *endStr, *outDir, *dedupe, *topN, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dataDir, workbook, startStr, endStr, outDir, dedupe string, topN int, verbose bool) error {
	if startStr == "" || endStr == "" {
		return fmt.Errorf("both -start and -end are required")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return fmt.Errorf("invalid -start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return fmt.Errorf("invalid -end date: %w", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx := context.Background()

	loader := dataset.NewLoader(dataDir, logger)

	var tables *dataset.Tables
	if workbook != "" {
		tables, err = loader.LoadWorkbook(ctx, workbook)
	} else {
		tables, err = loader.Load(ctx)
	}
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	builder := dataset.NewBuilder(dedupe, logger)
	master, quality, err := builder.Build(ctx, tables)
	if err != nil {
		return fmt.Errorf("build master dataset: %w", err)
	}

	boundary, err := analytics.NewBoundary(start, end)
	if err != nil {
		return err
	}

	opts := analytics.DefaultOptions()
	opts.TopCategories = topN

	summarizer := analytics.NewSummarizer(opts, logger)
	summary, err := summarizer.Summarize(ctx, master, boundary)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	printSummary(summary, quality)

	if outDir != "" {
		exp := exporter.NewSummaryExporter(outDir, logger)
		result, err := exp.Export(summary)
		if err != nil {
			return fmt.Errorf("export reports: %w", err)
		}
		fmt.Printf("\nReport %s written:\n", result.ReportID)
		for _, f := range result.CSVFiles {
			fmt.Printf("  %s\n", f)
		}
		fmt.Printf("  %s\n", result.Workbook)
	}

	return nil
}

func printSummary(s *analytics.ExecutiveSummary, q *dataset.QualityReport) {
	fmt.Printf("Executive Summary  %s to %s\n",
		s.Period.Start.Format("2006-01-02"), s.Period.End.Format("2006-01-02"))
	if s.HasComparison {
		fmt.Printf("Compared against   %s to %s\n",
			s.Comparison.Start.Format("2006-01-02"), s.Comparison.End.Format("2006-01-02"))
	}

	fmt.Println("\nRevenue")
	fmt.Printf("  Total revenue        %12.2f\n", s.Revenue.TotalRevenue)
	fmt.Printf("  Orders               %12d\n", s.Revenue.TotalOrders)
	fmt.Printf("  Items                %12d\n", s.Revenue.TotalItems)
	fmt.Printf("  Average order value  %12.2f\n", s.Revenue.AvgOrderValue)
	fmt.Printf("  Revenue growth       %12s\n", ratioStr(s.Revenue.RevenueGrowth, true))
	fmt.Printf("  Order growth         %12s\n", ratioStr(s.Revenue.OrderGrowth, true))

	fmt.Println("\nTop categories")
	for i, c := range s.Products.TopCategories {
		fmt.Printf("  %2d. %-30s %12.2f  (%.1f%%)\n", i+1, c.Category, c.Revenue, c.RevenueShare*100)
	}

	fmt.Println("\nTop states")
	limit := len(s.Geography.States)
	if limit > 5 {
		limit = 5
	}
	for _, st := range s.Geography.States[:limit] {
		fmt.Printf("  %-4s %12.2f  %6d orders\n", st.State, st.Revenue, st.Orders)
	}

	fmt.Println("\nCustomer experience")
	fmt.Printf("  Average review score %12s\n", ratioStr(s.Experience.AvgReviewScore, false))
	fmt.Printf("  Review rate          %12s\n", ratioStr(s.Experience.ReviewRate, true))
	fmt.Printf("  Avg delivery days    %12s\n", ratioStr(s.Experience.AvgDeliveryDays, false))
	fmt.Printf("  Score/delivery corr  %12s\n", ratioStr(s.Experience.ScoreDeliveryCorr, false))

	fmt.Println("\nOperations")
	fmt.Printf("  Total orders         %12d\n", s.Operations.TotalOrders)
	fmt.Printf("  Fulfillment rate     %12s\n", ratioStr(s.Operations.FulfillmentRate, true))
	fmt.Printf("  Cancellation rate    %12s\n", ratioStr(s.Operations.CancellationRate, true))

	fmt.Println("\nData quality")
	fmt.Printf("  Master rows          %12d\n", q.MasterRows)
	fmt.Printf("  Orphaned items       %12d\n", q.OrphanedItems)
	fmt.Printf("  Missing products     %12d\n", q.MissingProducts)
	fmt.Printf("  Duplicate reviews    %12d\n", q.DuplicateReviews)
}

func ratioStr(r analytics.Ratio, percent bool) string {
	if !r.Defined {
		return "n/a"
	}
	if percent {
		return fmt.Sprintf("%.1f%%", r.Value*100)
	}
	return fmt.Sprintf("%.2f", r.Value)
}
