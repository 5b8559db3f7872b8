package review

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("review not found")

type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	Create(rev Review) (Review, error)
}

// InMemoryRepository is used by tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository(seed []Review) *InMemoryRepository {
	r := &InMemoryRepository{reviews: make([]Review, 0, len(seed)), nextID: 1}
	maxID := 0
	for _, rev := range seed {
		r.reviews = append(r.reviews, rev)
		if rev.ID > maxID {
			maxID = rev.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Review, 0)
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}

	return out, nil
}

func (r *InMemoryRepository) Create(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rev.ID == 0 {
		rev.ID = r.nextID
		r.nextID++
	}

	r.reviews = append(r.reviews, rev)
	return rev, nil
}
