package product

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, title, slug, description, inventory, unit_price, collection_id, last_update`

	getProductQuery = `
		SELECT id, title, slug, description, inventory, unit_price, collection_id, last_update
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (title, slug, description, inventory, unit_price, collection_id, last_update)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, last_update
	`
	updateProductQuery = `
		UPDATE products
		SET title = $1, slug = $2, description = $3, inventory = $4, unit_price = $5, collection_id = $6, last_update = now()
		WHERE id = $7
		RETURNING id, last_update
	`
	countOrderItemsQuery = `SELECT COUNT(*) FROM order_items WHERE product_id = $1`
	deleteProductQuery   = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(f Filter) ([]Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)

	where := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if f.CollectionID != nil {
		args = append(args, *f.CollectionID)
		where = append(where, fmt.Sprintf("collection_id = $%d", len(args)))
	}
	if f.UnitPriceGT != nil {
		args = append(args, *f.UnitPriceGT)
		where = append(where, fmt.Sprintf("unit_price > $%d", len(args)))
	}
	if f.UnitPriceLT != nil {
		args = append(args, *f.UnitPriceLT)
		where = append(where, fmt.Sprintf("unit_price < $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(f.OrderBy)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// orderClause maps the API ordering field to a SQL clause. Only known
// fields are accepted, everything else falls back to id.
func orderClause(orderBy string) string {
	switch orderBy {
	case "unit_price":
		return "unit_price"
	case "-unit_price":
		return "unit_price DESC"
	case "last_update":
		return "last_update"
	case "-last_update":
		return "last_update DESC"
	default:
		return "id"
	}
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductQuery, id))
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Title, p.Slug, p.Description, p.Inventory, p.UnitPrice, p.CollectionID,
	).Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		return Product{}, errors.Wrap(err, "insert product")
	}

	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	err := r.db.QueryRow(updateProductQuery,
		p.Title, p.Slug, p.Description, p.Inventory, p.UnitPrice, p.CollectionID, id,
	).Scan(&p.ID, &p.LastUpdate)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, errors.Wrap(err, "update product")
	}

	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	var count int
	if err := r.db.QueryRow(countOrderItemsQuery, id).Scan(&count); err != nil {
		return errors.Wrap(err, "count order items")
	}
	if count > 0 {
		return ErrInOrder
	}

	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Inventory, &p.UnitPrice, &p.CollectionID, &p.LastUpdate)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, err
		}
		return Product{}, errors.Wrap(err, "scan product")
	}

	return p, nil
}
