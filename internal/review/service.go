package review

import (
	"github.com/mystore/storefront-backend/internal/product"
)

// Service provides business logic for product reviews. It checks that the
// reviewed product exists before writing.
type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) ListByProduct(productID int) ([]Review, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return nil, err
	}
	return s.repo.ListByProduct(productID)
}

func (s *Service) Create(rev Review) (Review, error) {
	if _, err := s.products.GetByID(rev.ProductID); err != nil {
		return Review{}, err
	}
	return s.repo.Create(rev)
}
