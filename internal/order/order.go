package order

import (
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront-backend/internal/product"
)

// Payment statuses an order moves through. Orders are created pending and
// only the payment_status field ever changes afterwards.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusComplete = "complete"
	PaymentStatusFailed   = "failed"
)

// Order is the durable record of a completed purchase.
type Order struct {
	ID            int    `json:"id"`
	CustomerID    int    `json:"customer"`
	PlacedAt      string `json:"placedAt"`
	PaymentStatus string `json:"paymentStatus"`
	Items         []Item `json:"items"`
}

// Item carries the historical-price invariant: UnitPrice is copied from the
// product at checkout time and never recomputed, while the embedded product
// summary always shows the catalog's current price.
type Item struct {
	ID        int             `json:"id"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Product   product.Summary `json:"product"`
}

// ValidPaymentStatus reports whether s is one of the known statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}
