package customer

// Membership levels, mirroring the single-letter codes stored in the DB.
const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

// Customer is the storefront profile attached 1:1 to a user account.
// Checkout resolves an acting user to a customer; it never creates one.
type Customer struct {
	ID         int     `json:"id"`
	UserID     int     `json:"userId"`
	Phone      string  `json:"phone"`
	BirthDate  *string `json:"birthDate,omitempty"`
	Membership string  `json:"membership"`
}
