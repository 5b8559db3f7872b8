package collection

import (
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("collection not found")
	ErrNotEmpty = errors.New("collection includes one or more products")
)

type Repository interface {
	List() ([]Collection, error)
	GetByID(id int) (Collection, error)
	Create(col Collection) (Collection, error)
	Update(id int, col Collection) (Collection, error)
	// Delete fails with ErrNotEmpty when any product references the collection.
	Delete(id int) error
}

// InMemoryRepository is used by tests and local scenarios. Product counts
// are seeded directly since the in-memory variant has no product table.
type InMemoryRepository struct {
	mu          sync.RWMutex
	collections []Collection
	nextID      int
}

func NewInMemoryRepository(seed []Collection) *InMemoryRepository {
	r := &InMemoryRepository{collections: make([]Collection, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, col := range seed {
		r.collections = append(r.collections, col)
		if col.ID > maxID {
			maxID = col.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Collection, len(r.collections))
	copy(out, r.collections)
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, col := range r.collections {
		if col.ID == id {
			return col, nil
		}
	}

	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Create(col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if col.ID == 0 {
		col.ID = r.nextID
		r.nextID++
	}

	r.collections = append(r.collections, col)
	return col, nil
}

func (r *InMemoryRepository) Update(id int, col Collection) (Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.collections {
		if existing.ID == id {
			existing.Title = col.Title
			r.collections[i] = existing
			return existing, nil
		}
	}

	return Collection{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, col := range r.collections {
		if col.ID == id {
			if col.ProductsCount > 0 {
				return ErrNotEmpty
			}
			r.collections = append(r.collections[:i], r.collections[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}
