package cart

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/mystore/storefront-backend/internal/product"
)

var (
	ErrNotFound     = errors.New("no cart with given id")
	ErrItemNotFound = errors.New("cart item not found")
)

type Repository interface {
	Create() (Cart, error)
	// Get returns the cart with its items, each carrying the product's
	// current catalog price. Totals are filled in by the service.
	Get(id uuid.UUID) (Cart, error)
	Delete(id uuid.UUID) error
	// UpsertItem inserts a (cart, product) row or atomically increments the
	// quantity of an existing one.
	UpsertItem(cartID uuid.UUID, productID, quantity int) error
	UpdateItem(cartID uuid.UUID, itemID, quantity int) error
	RemoveItem(cartID uuid.UUID, itemID int) error
}

type memoryItem struct {
	id        int
	productID int
	quantity  int
}

// InMemoryRepository is used by tests and local scenarios. Product details
// are resolved through the given product service, mirroring the join the
// Postgres implementation does.
type InMemoryRepository struct {
	mu       sync.Mutex
	carts    map[uuid.UUID][]memoryItem
	products product.ServiceInterface
	nextItem int
}

func NewInMemoryRepository(products product.ServiceInterface) *InMemoryRepository {
	return &InMemoryRepository{
		carts:    make(map[uuid.UUID][]memoryItem),
		products: products,
		nextItem: 1,
	}
}

func (r *InMemoryRepository) Create() (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.carts[id] = nil
	return Cart{ID: id, Items: []Item{}}, nil
}

func (r *InMemoryRepository) Get(id uuid.UUID) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[id]
	if !ok {
		return Cart{}, ErrNotFound
	}

	out := Cart{ID: id, Items: make([]Item, 0, len(items))}
	for _, it := range items {
		p, err := r.products.GetByID(it.productID)
		if err != nil {
			return Cart{}, err
		}
		out.Items = append(out.Items, Item{ID: it.id, Product: p.Summary(), Quantity: it.quantity})
	}

	return out, nil
}

func (r *InMemoryRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

func (r *InMemoryRepository) UpsertItem(cartID uuid.UUID, productID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[cartID]
	if !ok {
		return ErrNotFound
	}

	for i, it := range items {
		if it.productID == productID {
			items[i].quantity += quantity
			r.carts[cartID] = items
			return nil
		}
	}

	items = append(items, memoryItem{id: r.nextItem, productID: productID, quantity: quantity})
	r.nextItem++
	r.carts[cartID] = items
	return nil
}

func (r *InMemoryRepository) UpdateItem(cartID uuid.UUID, itemID, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[cartID]
	if !ok {
		return ErrNotFound
	}

	for i, it := range items {
		if it.id == itemID {
			items[i].quantity = quantity
			r.carts[cartID] = items
			return nil
		}
	}

	return ErrItemNotFound
}

func (r *InMemoryRepository) RemoveItem(cartID uuid.UUID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.carts[cartID]
	if !ok {
		return ErrNotFound
	}

	for i, it := range items {
		if it.id == itemID {
			r.carts[cartID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}

	return ErrItemNotFound
}
