package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("unit price must be non-negative")

// ServiceInterface is implemented by *Service and by test fakes. The cart
// package consumes it to validate and describe products.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
}

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(f Filter) ([]Product, error) {
	return s.repo.List(f)
}

func (s *Service) GetByID(id int) (Product, error) {
	if id <= 0 {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(p Product) (Product, error) {
	if p.UnitPrice.LessThan(decimal.Zero) {
		return Product{}, ErrInvalidPrice
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Product) (Product, error) {
	if p.UnitPrice.LessThan(decimal.Zero) {
		return Product{}, ErrInvalidPrice
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Title)
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
