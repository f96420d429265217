package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names accepted for each table when loading from a workbook.
// Exports vary between snake_case and title-case sheet labels.
var sheetNames = map[string][]string{
	"orders":      {"orders", "Orders"},
	"order_items": {"order_items", "Order Items", "OrderItems"},
	"products":    {"products", "Products"},
	"customers":   {"customers", "Customers"},
	"payments":    {"payments", "Payments", "order_payments"},
	"reviews":     {"reviews", "Reviews", "order_reviews"},
}

// LoadWorkbook reads the six tables from a single Excel workbook with one
// sheet per table. Same schema rules as the CSV loader.
func (l *Loader) LoadWorkbook(ctx context.Context, path string) (*Tables, error) {
	start := time.Now()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	tables := &Tables{}

	for table := range sheetNames {
		header, rows, err := workbookRows(f, table)
		if err != nil {
			return nil, err
		}

		switch table {
		case "orders":
			tables.Orders, err = parseOrders(header, rows)
		case "order_items":
			tables.OrderItems, err = parseOrderItems(header, rows)
		case "products":
			tables.Products, err = parseProducts(header, rows)
		case "customers":
			tables.Customers, err = parseCustomers(header, rows)
		case "payments":
			tables.Payments, err = parsePayments(header, rows)
		case "reviews":
			tables.Reviews, err = parseReviews(header, rows)
		}
		if err != nil {
			return nil, fmt.Errorf("parse sheet %s: %w", table, err)
		}
	}

	l.logger.InfoContext(ctx, "loaded workbook",
		slog.String("path", path),
		slog.Int("orders", len(tables.Orders)),
		slog.Int("order_items", len(tables.OrderItems)),
		slog.Duration("duration", time.Since(start)),
	)

	return tables, nil
}

// workbookRows finds the sheet for a table and splits header from data rows
func workbookRows(f *excelize.File, table string) ([]string, [][]string, error) {
	for _, name := range sheetNames[table] {
		rows, err := f.GetRows(name)
		if err == nil && len(rows) > 0 {
			return rows[0], rows[1:], nil
		}
	}

	// Fall back to a case-insensitive scan of every sheet
	for _, name := range f.GetSheetList() {
		if !strings.EqualFold(strings.ReplaceAll(name, " ", "_"), table) {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if len(rows) > 0 {
			return rows[0], rows[1:], nil
		}
	}

	return nil, nil, fmt.Errorf("workbook has no sheet for table %s", table)
}
