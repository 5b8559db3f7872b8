package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront-backend/internal/product"
)

// Cart is an anonymous shopping cart keyed by an opaque uuid. It exists
// only until checkout or explicit deletion.
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	CreatedAt  string          `json:"createdAt,omitempty"`
	Items      []Item          `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Item is a (product, quantity) pair in a cart. It never stores a price;
// prices are read from the catalog at serialization and at checkout time.
type Item struct {
	ID         int             `json:"id"`
	Product    product.Summary `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}
