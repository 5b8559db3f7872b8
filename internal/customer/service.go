package customer

// ServiceInterface is implemented by *Service and by test fakes. The order
// package consumes it as its customer directory.
type ServiceInterface interface {
	GetByUserID(userID int) (Customer, error)
	EnsureForUser(userID int) (Customer, error)
	Update(id int, cust Customer) (Customer, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByUserID(userID int) (Customer, error) {
	if userID <= 0 {
		return Customer{}, ErrNotFound
	}
	return s.repo.GetByUserID(userID)
}

// EnsureForUser returns the customer profile for a user, creating an empty
// bronze profile on first access. Used by the /customers/me endpoints.
func (s *Service) EnsureForUser(userID int) (Customer, error) {
	cust, err := s.repo.GetByUserID(userID)
	if err == nil {
		return cust, nil
	}
	if err != ErrNotFound {
		return Customer{}, err
	}

	return s.repo.Create(Customer{UserID: userID, Membership: MembershipBronze})
}

func (s *Service) Update(id int, cust Customer) (Customer, error) {
	return s.repo.Update(id, cust)
}
