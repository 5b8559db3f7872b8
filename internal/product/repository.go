package product

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInOrder is returned when deleting a product that appears on an order.
	ErrInOrder = errors.New("product is associated with an existing order")
)

// Filter narrows and orders product listings. Nil/zero fields are ignored.
type Filter struct {
	CollectionID *int
	UnitPriceGT  *decimal.Decimal
	UnitPriceLT  *decimal.Decimal
	Search       string
	OrderBy      string // unit_price | -unit_price | last_update | -last_update
}

type Repository interface {
	List(f Filter) ([]Product, error)
	GetByID(id int) (Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	Delete(id int) error
}

// InMemoryRepository is used by tests and local scenarios. OrderedIDs marks
// products that appear on orders so delete guarding can be exercised.
type InMemoryRepository struct {
	mu         sync.RWMutex
	products   []Product
	OrderedIDs map[int]bool
	nextID     int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		products:   make([]Product, 0, len(seed)),
		OrderedIDs: make(map[int]bool),
		nextID:     1,
	}
	maxID := 0
	for _, p := range seed {
		r.products = append(r.products, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.products {
		if f.CollectionID != nil && p.CollectionID != *f.CollectionID {
			continue
		}
		if f.UnitPriceGT != nil && !p.UnitPrice.GreaterThan(*f.UnitPriceGT) {
			continue
		}
		if f.UnitPriceLT != nil && !p.UnitPrice.LessThan(*f.UnitPriceLT) {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Title), needle) &&
				!strings.Contains(strings.ToLower(p.Description), needle) {
				continue
			}
		}
		out = append(out, p)
	}

	sortProducts(out, f.OrderBy)
	return out, nil
}

func sortProducts(products []Product, orderBy string) {
	switch orderBy {
	case "unit_price":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UnitPrice.LessThan(products[j].UnitPrice)
		})
	case "-unit_price":
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].UnitPrice.LessThan(products[i].UnitPrice)
		})
	case "last_update":
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].LastUpdate < products[j].LastUpdate
		})
	case "-last_update":
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].LastUpdate < products[i].LastUpdate
		})
	}
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}

	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}

	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == id {
			p.ID = id
			r.products[i] = p
			return p, nil
		}
	}

	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.OrderedIDs[id] {
		return ErrInOrder
	}

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
