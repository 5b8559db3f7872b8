package collection

// Collection groups products for browsing.
// ProductsCount is computed on read, never stored.
type Collection struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ProductsCount int    `json:"productsCount"`
}
