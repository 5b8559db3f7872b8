package collection

import (
	"database/sql"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCollectionsQuery = `
		SELECT c.id, c.title, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		GROUP BY c.id, c.title
		ORDER BY c.id
	`
	getCollectionQuery = `
		SELECT c.id, c.title, COUNT(p.id)
		FROM collections c
		LEFT JOIN products p ON p.collection_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.title
	`
	insertCollectionQuery = `INSERT INTO collections (title) VALUES ($1) RETURNING id`
	updateCollectionQuery = `UPDATE collections SET title = $1 WHERE id = $2 RETURNING id`
	countProductsQuery    = `SELECT COUNT(*) FROM products WHERE collection_id = $1`
	deleteCollectionQuery = `DELETE FROM collections WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Collection, error) {
	rows, err := r.db.Query(listCollectionsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "list collections")
	}
	defer rows.Close()

	out := make([]Collection, 0)
	for rows.Next() {
		var col Collection
		if err := rows.Scan(&col.ID, &col.Title, &col.ProductsCount); err != nil {
			return nil, errors.Wrap(err, "scan collection")
		}
		out = append(out, col)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Collection, error) {
	var col Collection
	err := r.db.QueryRow(getCollectionQuery, id).Scan(&col.ID, &col.Title, &col.ProductsCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return Collection{}, ErrNotFound
		}
		return Collection{}, errors.Wrap(err, "get collection")
	}

	return col, nil
}

func (r *PostgresRepository) Create(col Collection) (Collection, error) {
	if err := r.db.QueryRow(insertCollectionQuery, col.Title).Scan(&col.ID); err != nil {
		return Collection{}, errors.Wrap(err, "insert collection")
	}
	return col, nil
}

func (r *PostgresRepository) Update(id int, col Collection) (Collection, error) {
	if err := r.db.QueryRow(updateCollectionQuery, col.Title, id).Scan(&col.ID); err != nil {
		if err == sql.ErrNoRows {
			return Collection{}, ErrNotFound
		}
		return Collection{}, errors.Wrap(err, "update collection")
	}
	return col, nil
}

func (r *PostgresRepository) Delete(id int) error {
	var count int
	if err := r.db.QueryRow(countProductsQuery, id).Scan(&count); err != nil {
		return errors.Wrap(err, "count collection products")
	}
	if count > 0 {
		return ErrNotEmpty
	}

	res, err := r.db.Exec(deleteCollectionQuery, id)
	if err != nil {
		return errors.Wrap(err, "delete collection")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}
