package customer

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	GetByUserID(userID int) (Customer, error)
	Create(cust Customer) (Customer, error)
	Update(id int, cust Customer) (Customer, error)
}

// InMemoryRepository is used by tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	customers []Customer
	nextID    int
}

func NewInMemoryRepository(seed []Customer) *InMemoryRepository {
	r := &InMemoryRepository{customers: make([]Customer, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, c := range seed {
		r.customers = append(r.customers, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) GetByUserID(userID int) (Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.UserID == userID {
			return c, nil
		}
	}

	return Customer{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cust Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cust.ID == 0 {
		cust.ID = r.nextID
		r.nextID++
	}
	if cust.Membership == "" {
		cust.Membership = MembershipBronze
	}

	r.customers = append(r.customers, cust)
	return cust, nil
}

func (r *InMemoryRepository) Update(id int, cust Customer) (Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.customers {
		if c.ID == id {
			c.Phone = cust.Phone
			c.BirthDate = cust.BirthDate
			if cust.Membership != "" {
				c.Membership = cust.Membership
			}
			r.customers[i] = c
			return c, nil
		}
	}

	return Customer{}, ErrNotFound
}
