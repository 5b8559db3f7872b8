package order

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mystore/storefront-backend/internal/cart"
)

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

var (
	ErrCartNotFound = errors.New("no cart with given id")
	ErrCartEmpty    = errors.New("cart is empty")
	ErrNotFound     = errors.New("order not found")
)

type Repository interface {
	// CreateFromCart atomically snapshots the cart's line items at the
	// catalog's current prices into a new pending order and deletes the
	// cart. Either everything commits or nothing does; a concurrent
	// checkout of the same cart loses with ErrCartNotFound.
	CreateFromCart(ctx context.Context, cartID uuid.UUID, customerID int) (Order, error)
	GetByID(id int) (Order, error)
	ListAll() ([]Order, error)
	ListByCustomer(customerID int) ([]Order, error)
	UpdatePaymentStatus(id int, status string) (Order, error)
	Delete(id int) error
}

// InMemoryRepository is used by tests and local scenarios. It reuses the
// cart repository as its cart store so checkout removes carts from the same
// place the cart endpoints serve them from.
type InMemoryRepository struct {
	mu       sync.Mutex
	carts    cart.Repository
	orders   []Order
	nextID   int
	nextItem int
}

func NewInMemoryRepository(carts cart.Repository) *InMemoryRepository {
	return &InMemoryRepository{carts: carts, nextID: 1, nextItem: 1}
}

func (r *InMemoryRepository) CreateFromCart(ctx context.Context, cartID uuid.UUID, customerID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	crt, err := r.carts.Get(cartID)
	if err != nil {
		if err == cart.ErrNotFound {
			return Order{}, ErrCartNotFound
		}
		return Order{}, err
	}
	if len(crt.Items) == 0 {
		return Order{}, ErrCartEmpty
	}

	ord := Order{
		ID:            r.nextID,
		CustomerID:    customerID,
		PlacedAt:      nowRFC3339(),
		PaymentStatus: PaymentStatusPending,
		Items:         make([]Item, 0, len(crt.Items)),
	}
	r.nextID++

	for _, it := range crt.Items {
		ord.Items = append(ord.Items, Item{
			ID:        r.nextItem,
			UnitPrice: it.Product.UnitPrice,
			Quantity:  it.Quantity,
			Product:   it.Product,
		})
		r.nextItem++
	}

	if err := r.carts.Delete(cartID); err != nil {
		return Order{}, err
	}

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) ListByCustomer(customerID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CustomerID == customerID {
			out = append(out, ord)
		}
	}

	return out, nil
}

func (r *InMemoryRepository) UpdatePaymentStatus(id int, status string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			ord.PaymentStatus = status
			r.orders[i] = ord
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
