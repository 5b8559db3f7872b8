package customer

import (
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getByUserIDQuery = `
		SELECT id, user_id, phone, birth_date, membership
		FROM customers
		WHERE user_id = $1
	`
	insertCustomerQuery = `
		INSERT INTO customers (user_id, phone, birth_date, membership)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	updateCustomerQuery = `
		UPDATE customers
		SET phone = $1, birth_date = $2, membership = $3
		WHERE id = $4
		RETURNING id, user_id, phone, birth_date, membership
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUserID(userID int) (Customer, error) {
	return scanCustomer(r.db.QueryRow(getByUserIDQuery, userID))
}

func (r *PostgresRepository) Create(cust Customer) (Customer, error) {
	if cust.Membership == "" {
		cust.Membership = MembershipBronze
	}

	err := r.db.QueryRow(insertCustomerQuery, cust.UserID, cust.Phone, cust.BirthDate, cust.Membership).Scan(&cust.ID)
	if err != nil {
		return Customer{}, errors.Wrap(err, "insert customer")
	}

	return cust, nil
}

func (r *PostgresRepository) Update(id int, cust Customer) (Customer, error) {
	return scanCustomer(r.db.QueryRow(updateCustomerQuery, cust.Phone, cust.BirthDate, cust.Membership, id))
}

func scanCustomer(row *sql.Row) (Customer, error) {
	var (
		c     Customer
		birth sql.NullString
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Phone, &birth, &c.Membership)
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, errors.Wrap(err, "scan customer")
	}
	if birth.Valid {
		c.BirthDate = &birth.String
	}

	return c, nil
}
