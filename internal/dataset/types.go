package dataset

import (
	"time"
)

// Order status values observed in the source data. Anything else is kept
// verbatim and only surfaces in the status distribution.
const (
	StatusDelivered = "delivered"
	StatusCanceled  = "canceled"
	StatusReturned  = "returned"
)

// Order represents one row of the orders table
type Order struct {
	ID                  string     `json:"order_id"`
	CustomerID          string     `json:"customer_id"`
	Status              string     `json:"order_status"`
	PurchasedAt         time.Time  `json:"order_purchase_timestamp"`
	ApprovedAt          *time.Time `json:"order_approved_at,omitempty"`
	DeliveredAt         *time.Time `json:"order_delivered_customer_date,omitempty"`
	EstimatedDeliveryAt *time.Time `json:"order_estimated_delivery_date,omitempty"`
}

// IsValid checks if the order carries the minimum usable fields
func (o Order) IsValid() bool {
	return o.ID != "" && !o.PurchasedAt.IsZero()
}

// OrderItem represents one row of the order_items table
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ItemSeq   int     `json:"order_item_id"`
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Freight   float64 `json:"freight_value"`
}

// TotalValue returns item price plus freight
func (oi OrderItem) TotalValue() float64 {
	return oi.Price + oi.Freight
}

// Product represents one row of the products table
type Product struct {
	ID       string `json:"product_id"`
	Category string `json:"product_category_name"`
}

// Customer represents one row of the customers table
type Customer struct {
	ID    string `json:"customer_id"`
	City  string `json:"customer_city"`
	State string `json:"customer_state"`
}

// Payment represents one row of the payments table
type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}

// Review represents one row of the reviews table
type Review struct {
	ID        string    `json:"review_id"`
	OrderID   string    `json:"order_id"`
	Score     float64   `json:"review_score"`
	CreatedAt time.Time `json:"review_creation_date"`
}

// Tables holds the six raw tables after load. Immutable once loaded.
type Tables struct {
	Orders     []Order
	OrderItems []OrderItem
	Products   []Product
	Customers  []Customer
	Payments   []Payment
	Reviews    []Review
}

// MasterRecord is one denormalized row per (order, order item) after all
// joins. Review score and delivery days are nil when the source has no
// matching row; everything else is always populated.
type MasterRecord struct {
	OrderID      string     `json:"order_id"`
	ItemSeq      int        `json:"item_seq"`
	ProductID    string     `json:"product_id"`
	CustomerID   string     `json:"customer_id"`
	Status       string     `json:"status"`
	PurchasedAt  time.Time  `json:"purchased_at"`
	Delivered    bool       `json:"delivered"`
	Canceled     bool       `json:"canceled"`
	DeliveryDays *int       `json:"delivery_days,omitempty"`
	Price        float64    `json:"price"`
	Freight      float64    `json:"freight"`
	PaymentTotal float64    `json:"payment_total"`
	Category     string     `json:"category"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ReviewScore  *float64   `json:"review_score,omitempty"`
}

// TotalValue returns item price plus freight
func (r MasterRecord) TotalValue() float64 {
	return r.Price + r.Freight
}

// MasterSet is the denormalized record set all metric functions consume.
// Read-only after build; concurrent readers are safe.
type MasterSet []MasterRecord

// DateRange returns the earliest and latest purchase dates in the set.
// ok is false for an empty set.
func (ms MasterSet) DateRange() (min, max time.Time, ok bool) {
	if len(ms) == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = ms[0].PurchasedAt, ms[0].PurchasedAt
	for _, r := range ms[1:] {
		if r.PurchasedAt.Before(min) {
			min = r.PurchasedAt
		}
		if r.PurchasedAt.After(max) {
			max = r.PurchasedAt
		}
	}
	return min, max, true
}

// QualityReport captures join integrity diagnostics from the build step.
// It is informational only and never affects metric correctness.
type QualityReport struct {
	SourceRows       map[string]int `json:"source_rows"`
	MasterRows       int            `json:"master_rows"`
	OrphanedItems    int            `json:"orphaned_items"`
	MissingProducts  int            `json:"missing_products"`
	MissingCustomers int            `json:"missing_customers"`
	MissingPayments  int            `json:"missing_payments"`
	MissingReviews   int            `json:"missing_reviews"`
	DuplicateReviews int            `json:"duplicate_reviews"`
	NullDeliveryDays int            `json:"null_delivery_days"`
}
