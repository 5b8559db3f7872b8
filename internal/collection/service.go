package collection

import "strings"

// Service provides business logic for collections.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Collection, error) {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Collection, error) {
	if id <= 0 {
		return Collection{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) Create(col Collection) (Collection, error) {
	col.Title = strings.TrimSpace(col.Title)
	return s.repo.Create(col)
}

func (s *Service) Update(id int, col Collection) (Collection, error) {
	col.Title = strings.TrimSpace(col.Title)
	return s.repo.Update(id, col)
}

func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
