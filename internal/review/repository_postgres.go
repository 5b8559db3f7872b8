package review

import (
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
		SELECT id, product_id, name, description, date
		FROM reviews
		WHERE product_id = $1
		ORDER BY date DESC, id DESC
	`
	insertReviewQuery = `
		INSERT INTO reviews (product_id, name, description, date)
		VALUES ($1, $2, $3, CURRENT_DATE)
		RETURNING id, date
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(productID int) ([]Review, error) {
	rows, err := r.db.Query(listReviewsQuery, productID)
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rev Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.Name, &rev.Description, &rev.Date); err != nil {
			return nil, errors.Wrap(err, "scan review")
		}
		out = append(out, rev)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) Create(rev Review) (Review, error) {
	err := r.db.QueryRow(insertReviewQuery, rev.ProductID, rev.Name, rev.Description).Scan(&rev.ID, &rev.Date)
	if err != nil {
		return Review{}, errors.Wrap(err, "insert review")
	}

	return rev, nil
}
