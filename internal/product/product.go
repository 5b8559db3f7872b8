package product

import (
	"github.com/shopspring/decimal"
)

// Product maps to the `products` table. Prices are decimals, never floats.
type Product struct {
	ID           int             `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Inventory    int             `json:"inventory"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CollectionID int             `json:"collectionId"`
	LastUpdate   string          `json:"lastUpdate,omitempty"`
}

// Summary is the compact product shape embedded in cart and order items.
type Summary struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (p Product) Summary() Summary {
	return Summary{ID: p.ID, Title: p.Title, UnitPrice: p.UnitPrice}
}
