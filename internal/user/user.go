package user

// User is an authenticated principal. Customer-facing profile data lives
// on the customer record, not here.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsStaff   bool   `json:"isStaff"`
	CreatedAt string `json:"createdAt,omitempty"`
}
