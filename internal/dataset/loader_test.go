package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixture writes one table file into dir
func writeFixture(t *testing.T, dir, fileName, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0644))
}

// writeAllFixtures writes a small but complete six-table dataset
func writeAllFixtures(t *testing.T, dir string) {
	t.Helper()
	writeFixture(t, dir, "orders_dataset.csv",
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,delivered,2017-01-05 10:00:00,2017-01-05 11:00:00,2017-01-12 09:00:00,2017-01-20 00:00:00\n"+
			"o2,c2,CANCELED,2017-01-10 08:30:00,,,\n"+
			"o3,c1,delivered,2017-02-01 15:45:00,2017-02-01 16:00:00,2017-02-04 12:00:00,2017-02-10 00:00:00\n")
	writeFixture(t, dir, "order_items_dataset.csv",
		"order_id,order_item_id,product_id,price,freight_value\n"+
			"o1,1,p1,100.00,10.00\n"+
			"o2,1,p2,50.00,5.00\n"+
			"o3,1,p1,30.00,3.00\n"+
			"o3,2,p2,20.00,2.00\n")
	writeFixture(t, dir, "products_dataset.csv",
		"product_id,product_category_name\n"+
			"p1,bed_bath_table\n"+
			"p2,health_beauty\n")
	writeFixture(t, dir, "customers_dataset.csv",
		"customer_id,customer_city,customer_state\n"+
			"c1,Sao Paulo,sp\n"+
			"c2,Rio de Janeiro,rj\n")
	writeFixture(t, dir, "order_payments_dataset.csv",
		"order_id,payment_sequential,payment_type,payment_installments,payment_value\n"+
			"o1,1,credit_card,3,110.00\n"+
			"o2,1,boleto,1,55.00\n"+
			"o3,1,credit_card,1,55.00\n")
	writeFixture(t, dir, "order_reviews_dataset.csv",
		"review_id,order_id,review_score,review_creation_date\n"+
			"r1,o1,5,2017-01-13 00:00:00\n"+
			"r2,o3,3,2017-02-05 00:00:00\n")
}

func TestLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)

	loader := NewLoader(dir, nil)
	tables, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, tables)

	assert.Len(t, tables.Orders, 3)
	assert.Len(t, tables.OrderItems, 4)
	assert.Len(t, tables.Products, 2)
	assert.Len(t, tables.Customers, 2)
	assert.Len(t, tables.Payments, 3)
	assert.Len(t, tables.Reviews, 2)

	// Statuses normalize to lowercase
	assert.Equal(t, "canceled", tables.Orders[1].Status)

	// Timestamp coercion
	assert.Equal(t, time.Date(2017, 1, 5, 10, 0, 0, 0, time.UTC), tables.Orders[0].PurchasedAt)
	require.NotNil(t, tables.Orders[0].DeliveredAt)
	assert.Nil(t, tables.Orders[1].DeliveredAt)

	// City lowercased, state uppercased
	assert.Equal(t, "sao paulo", tables.Customers[0].City)
	assert.Equal(t, "SP", tables.Customers[0].State)

	// Category names normalized
	assert.Equal(t, "Bed Bath Table", tables.Products[0].Category)
}

func TestLoaderMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)

	// Drop the required price column from order_items
	writeFixture(t, dir, "order_items_dataset.csv",
		"order_id,order_item_id,product_id,freight_value\n"+
			"o1,1,p1,10.00\n")

	loader := NewLoader(dir, nil)
	_, err := loader.Load(context.Background())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "order_items", schemaErr.Table)
	assert.Equal(t, "price", schemaErr.Column)
}

func TestLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "order_reviews_dataset.csv")))

	loader := NewLoader(dir, nil)
	_, err := loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderSkipsUnusableOrders(t *testing.T) {
	dir := t.TempDir()
	writeAllFixtures(t, dir)

	// One good order, one without purchase timestamp, one without order_id
	writeFixture(t, dir, "orders_dataset.csv",
		"order_id,customer_id,order_status,order_purchase_timestamp\n"+
			"o1,c1,delivered,2017-01-05 10:00:00\n"+
			"o2,c2,delivered,\n"+
			",c3,delivered,2017-01-06 10:00:00\n")

	loader := NewLoader(dir, nil)
	tables, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, tables.Orders, 1)
	assert.Equal(t, "o1", tables.Orders[0].ID)
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "underscores to title case", input: "bed_bath_table", want: "Bed Bath Table"},
		{name: "single word", input: "toys", want: "Toys"},
		{name: "already spaced", input: "health beauty", want: "Health Beauty"},
		{name: "mixed case", input: "HEALTH_beauty", want: "Health Beauty"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.input))
		})
	}
}

func TestFieldCoercion(t *testing.T) {
	row := []string{"text", "12.5", "7", "2017-03-01 12:00:00", "1,234.56", ""}

	assert.Equal(t, "text", fieldStr(row, 0))
	assert.Equal(t, 12.5, fieldFloat(row, 1))
	assert.Equal(t, 7, fieldInt(row, 2))
	require.NotNil(t, fieldTime(row, 3))
	assert.Equal(t, 1234.56, fieldFloat(row, 4))

	// Out-of-range and empty cells read as zero values
	assert.Equal(t, "", fieldStr(row, 10))
	assert.Equal(t, 0.0, fieldFloat(row, 5))
	assert.Nil(t, fieldTime(row, 5))
	assert.Nil(t, fieldTime(row, 0))
}
