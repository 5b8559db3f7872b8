package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mystore/storefront-backend/internal/product"
)

var (
	ErrProductNotFound = errors.New("no product with given id")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Service orchestrates cart operations. Prices shown on a cart are the
// catalog's current prices; nothing is snapshotted until checkout.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Create() (Cart, error) {
	return s.repo.Create()
}

func (s *Service) Get(id uuid.UUID) (Cart, error) {
	c, err := s.repo.Get(id)
	if err != nil {
		return Cart{}, err
	}

	return withTotals(c), nil
}

func (s *Service) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

// AddItem validates the product, upserts the (cart, product) row and
// returns the refreshed cart.
func (s *Service) AddItem(cartID uuid.UUID, productID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(productID); err != nil {
		if err == product.ErrNotFound {
			return Cart{}, ErrProductNotFound
		}
		return Cart{}, err
	}

	if err := s.repo.UpsertItem(cartID, productID, quantity); err != nil {
		return Cart{}, err
	}

	return s.Get(cartID)
}

func (s *Service) UpdateItem(cartID uuid.UUID, itemID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}

	if err := s.repo.UpdateItem(cartID, itemID, quantity); err != nil {
		return Cart{}, err
	}

	return s.Get(cartID)
}

func (s *Service) RemoveItem(cartID uuid.UUID, itemID int) (Cart, error) {
	if err := s.repo.RemoveItem(cartID, itemID); err != nil {
		return Cart{}, err
	}

	return s.Get(cartID)
}

func withTotals(c Cart) Cart {
	total := decimal.Zero
	for i, it := range c.Items {
		line := it.Product.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		c.Items[i].TotalPrice = line
		total = total.Add(line)
	}
	c.TotalPrice = total
	return c
}
