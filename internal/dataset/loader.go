package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// SchemaError reports a required column missing from a source table.
// It is fatal: no partial result is produced.
type SchemaError struct {
	Table  string
	Column string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s: required column %q missing", e.Table, e.Column)
}

// Source file names, matching the raw export layout
var tableFiles = map[string]string{
	"orders":      "orders_dataset.csv",
	"order_items": "order_items_dataset.csv",
	"products":    "products_dataset.csv",
	"customers":   "customers_dataset.csv",
	"payments":    "order_payments_dataset.csv",
	"reviews":     "order_reviews_dataset.csv",
}

// Loader reads the six raw tables from a data directory
type Loader struct {
	dir    string
	logger *slog.Logger
}

// NewLoader creates a loader for the given data directory
func NewLoader(dir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:    dir,
		logger: logger.With(slog.String("component", "loader")),
	}
}

// Load reads all six CSV tables concurrently and returns the typed tables.
// Any schema problem aborts the whole load.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	start := time.Now()
	tables := &Tables{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "orders")
		if err != nil {
			return err
		}
		tables.Orders, err = parseOrders(header, rows)
		return err
	})
	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "order_items")
		if err != nil {
			return err
		}
		tables.OrderItems, err = parseOrderItems(header, rows)
		return err
	})
	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "products")
		if err != nil {
			return err
		}
		tables.Products, err = parseProducts(header, rows)
		return err
	})
	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "customers")
		if err != nil {
			return err
		}
		tables.Customers, err = parseCustomers(header, rows)
		return err
	})
	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "payments")
		if err != nil {
			return err
		}
		tables.Payments, err = parsePayments(header, rows)
		return err
	})
	g.Go(func() error {
		rows, header, err := l.readCSV(ctx, "reviews")
		if err != nil {
			return err
		}
		tables.Reviews, err = parseReviews(header, rows)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	l.logger.InfoContext(ctx, "loaded all tables",
		slog.Int("orders", len(tables.Orders)),
		slog.Int("order_items", len(tables.OrderItems)),
		slog.Int("products", len(tables.Products)),
		slog.Int("customers", len(tables.Customers)),
		slog.Int("payments", len(tables.Payments)),
		slog.Int("reviews", len(tables.Reviews)),
		slog.Duration("duration", time.Since(start)),
	)

	return tables, nil
}

// readCSV reads one table file into a header plus data rows
func (l *Loader) readCSV(ctx context.Context, table string) ([][]string, []string, error) {
	path := filepath.Join(l.dir, tableFiles[table])

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", table, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows handled by the parsers

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", table, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("read %s: empty file", table)
	}

	l.logger.DebugContext(ctx, "read table file",
		slog.String("table", table),
		slog.String("path", path),
		slog.Int("rows", len(all)-1),
	)

	return all[1:], all[0], nil
}

// columnIndex maps normalized header names to their positions
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

// requireColumns verifies every required column is present
func requireColumns(table string, cols map[string]int, required ...string) error {
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return &SchemaError{Table: table, Column: name}
		}
	}
	return nil
}

// Field accessors tolerate short rows; missing cells read as empty.

func fieldStr(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func fieldFloat(row []string, idx int) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(fieldStr(row, idx), ",", ""), 64)
	return v
}

func fieldInt(row []string, idx int) int {
	v, _ := strconv.Atoi(fieldStr(row, idx))
	return v
}

// timeLayouts covers the timestamp formats seen across the raw exports
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func fieldTime(row []string, idx int) *time.Time {
	s := fieldStr(row, idx)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeCategory cleans raw category names: underscores become spaces
// and each word is title-cased, e.g. "bed_bath_table" -> "Bed Bath Table".
func NormalizeCategory(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	words := strings.Split(strings.ReplaceAll(raw, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func parseOrders(header []string, rows [][]string) ([]Order, error) {
	cols := columnIndex(header)
	if err := requireColumns("orders", cols,
		"order_id", "customer_id", "order_status", "order_purchase_timestamp"); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		purchased := fieldTime(row, cols["order_purchase_timestamp"])
		if purchased == nil {
			// A row without a purchase timestamp cannot be period-filtered
			continue
		}
		order := Order{
			ID:          fieldStr(row, cols["order_id"]),
			CustomerID:  fieldStr(row, cols["customer_id"]),
			Status:      strings.ToLower(fieldStr(row, cols["order_status"])),
			PurchasedAt: *purchased,
		}
		if idx, ok := cols["order_approved_at"]; ok {
			order.ApprovedAt = fieldTime(row, idx)
		}
		if idx, ok := cols["order_delivered_customer_date"]; ok {
			order.DeliveredAt = fieldTime(row, idx)
		}
		if idx, ok := cols["order_estimated_delivery_date"]; ok {
			order.EstimatedDeliveryAt = fieldTime(row, idx)
		}
		if order.IsValid() {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func parseOrderItems(header []string, rows [][]string) ([]OrderItem, error) {
	cols := columnIndex(header)
	if err := requireColumns("order_items", cols,
		"order_id", "order_item_id", "product_id", "price", "freight_value"); err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(rows))
	for _, row := range rows {
		item := OrderItem{
			OrderID:   fieldStr(row, cols["order_id"]),
			ItemSeq:   fieldInt(row, cols["order_item_id"]),
			ProductID: fieldStr(row, cols["product_id"]),
			Price:     fieldFloat(row, cols["price"]),
			Freight:   fieldFloat(row, cols["freight_value"]),
		}
		if item.OrderID != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func parseProducts(header []string, rows [][]string) ([]Product, error) {
	cols := columnIndex(header)
	if err := requireColumns("products", cols, "product_id", "product_category_name"); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p := Product{
			ID:       fieldStr(row, cols["product_id"]),
			Category: NormalizeCategory(fieldStr(row, cols["product_category_name"])),
		}
		if p.ID != "" {
			products = append(products, p)
		}
	}
	return products, nil
}

func parseCustomers(header []string, rows [][]string) ([]Customer, error) {
	cols := columnIndex(header)
	if err := requireColumns("customers", cols, "customer_id", "customer_city", "customer_state"); err != nil {
		return nil, err
	}

	customers := make([]Customer, 0, len(rows))
	for _, row := range rows {
		c := Customer{
			ID:    fieldStr(row, cols["customer_id"]),
			City:  strings.ToLower(fieldStr(row, cols["customer_city"])),
			State: strings.ToUpper(fieldStr(row, cols["customer_state"])),
		}
		if c.ID != "" {
			customers = append(customers, c)
		}
	}
	return customers, nil
}

func parsePayments(header []string, rows [][]string) ([]Payment, error) {
	cols := columnIndex(header)
	if err := requireColumns("payments", cols, "order_id", "payment_value"); err != nil {
		return nil, err
	}

	payments := make([]Payment, 0, len(rows))
	for _, row := range rows {
		p := Payment{
			OrderID: fieldStr(row, cols["order_id"]),
			Value:   fieldFloat(row, cols["payment_value"]),
		}
		if idx, ok := cols["payment_sequential"]; ok {
			p.Sequential = fieldInt(row, idx)
		}
		if idx, ok := cols["payment_type"]; ok {
			p.Type = fieldStr(row, idx)
		}
		if idx, ok := cols["payment_installments"]; ok {
			p.Installments = fieldInt(row, idx)
		}
		if p.OrderID != "" {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func parseReviews(header []string, rows [][]string) ([]Review, error) {
	cols := columnIndex(header)
	if err := requireColumns("reviews", cols, "order_id", "review_score"); err != nil {
		return nil, err
	}

	reviews := make([]Review, 0, len(rows))
	for _, row := range rows {
		r := Review{
			OrderID: fieldStr(row, cols["order_id"]),
			Score:   fieldFloat(row, cols["review_score"]),
		}
		if idx, ok := cols["review_id"]; ok {
			r.ID = fieldStr(row, idx)
		}
		if idx, ok := cols["review_creation_date"]; ok {
			if t := fieldTime(row, idx); t != nil {
				r.CreatedAt = *t
			}
		}
		if r.OrderID != "" {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}
