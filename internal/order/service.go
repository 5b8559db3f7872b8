package order

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mystore/storefront-backend/internal/cart"
	"github.com/mystore/storefront-backend/internal/customer"
	"github.com/mystore/storefront-backend/internal/events"
)

var (
	ErrNoCustomer    = errors.New("no customer for user")
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrNotOwned      = errors.New("order belongs to another customer")
)

// Publisher is the slice of the event bus the order service needs.
type Publisher interface {
	Publish(event string, payload any)
}

// CartStore lets the service validate a cart before customer resolution
// is even attempted. The authoritative checks still run inside the
// repository's checkout transaction.
type CartStore interface {
	Get(id uuid.UUID) (cart.Cart, error)
}

type ServiceInterface interface {
	Checkout(ctx context.Context, cartID uuid.UUID, userID int) (Order, error)
	ListForUser(userID int, staff bool) ([]Order, error)
	GetForUser(id, userID int, staff bool) (Order, error)
	UpdatePaymentStatus(id int, status string) (Order, error)
	Delete(id int) error
}

type Service struct {
	repo      Repository
	carts     CartStore
	customers customer.ServiceInterface
	bus       Publisher
}

func NewService(repo Repository, carts CartStore, customers customer.ServiceInterface, bus Publisher) *Service {
	return &Service{repo: repo, carts: carts, customers: customers, bus: bus}
}

// Checkout turns a cart into an order for the customer behind userID.
// Validation runs in a fixed sequence before anything is written: the cart
// must exist, it must not be empty, and the user must have a customer
// profile. The repository re-checks the cart inside its transaction, so a
// concurrent checkout of the same cart surfaces as ErrCartNotFound here.
// The order_created event is published after the order is durable; a
// failing subscriber never fails the checkout.
func (s *Service) Checkout(ctx context.Context, cartID uuid.UUID, userID int) (Order, error) {
	crt, err := s.carts.Get(cartID)
	if err != nil {
		if err == cart.ErrNotFound {
			return Order{}, ErrCartNotFound
		}
		return Order{}, err
	}
	if len(crt.Items) == 0 {
		return Order{}, ErrCartEmpty
	}

	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		if err == customer.ErrNotFound {
			return Order{}, ErrNoCustomer
		}
		return Order{}, err
	}

	ord, err := s.repo.CreateFromCart(ctx, cartID, cust.ID)
	if err != nil {
		return Order{}, err
	}

	if s.bus != nil {
		s.bus.Publish(events.OrderCreated, ord)
	}

	return ord, nil
}

// ListForUser returns every order for staff, and only the caller's own
// orders otherwise. A user with no customer profile has no orders.
func (s *Service) ListForUser(userID int, staff bool) ([]Order, error) {
	if staff {
		return s.repo.ListAll()
	}

	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		if err == customer.ErrNotFound {
			return []Order{}, nil
		}
		return nil, err
	}

	return s.repo.ListByCustomer(cust.ID)
}

func (s *Service) GetForUser(id, userID int, staff bool) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if staff {
		return ord, nil
	}

	cust, err := s.customers.GetByUserID(userID)
	if err != nil {
		if err == customer.ErrNotFound {
			return Order{}, ErrNotOwned
		}
		return Order{}, err
	}
	if ord.CustomerID != cust.ID {
		return Order{}, ErrNotOwned
	}

	return ord, nil
}

func (s *Service) UpdatePaymentStatus(id int, status string) (Order, error) {
	if !ValidPaymentStatus(status) {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdatePaymentStatus(id, status)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
