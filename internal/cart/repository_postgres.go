package cart

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertCartQuery = `INSERT INTO carts (id, created_at) VALUES ($1, now()) RETURNING created_at`
	getCartQuery    = `SELECT created_at FROM carts WHERE id = $1`
	getItemsQuery   = `
		SELECT ci.id, ci.quantity, p.id, p.title, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`
	deleteCartQuery = `DELETE FROM carts WHERE id = $1`
	upsertItemQuery = `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	updateItemQuery = `UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND id = $3`
	removeItemQuery = `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create() (Cart, error) {
	c := Cart{ID: uuid.New(), Items: []Item{}}
	if err := r.db.QueryRow(insertCartQuery, c.ID).Scan(&c.CreatedAt); err != nil {
		return Cart{}, errors.Wrap(err, "insert cart")
	}

	return c, nil
}

func (r *PostgresRepository) Get(id uuid.UUID) (Cart, error) {
	c := Cart{ID: id, Items: []Item{}}
	if err := r.db.QueryRow(getCartQuery, id).Scan(&c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Cart{}, ErrNotFound
		}
		return Cart{}, errors.Wrap(err, "get cart")
	}

	rows, err := r.db.Query(getItemsQuery, id)
	if err != nil {
		return Cart{}, errors.Wrap(err, "get cart items")
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Quantity, &it.Product.ID, &it.Product.Title, &it.Product.UnitPrice); err != nil {
			return Cart{}, errors.Wrap(err, "scan cart item")
		}
		c.Items = append(c.Items, it)
	}

	return c, rows.Err()
}

func (r *PostgresRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(deleteCartQuery, id)
	if err != nil {
		return errors.Wrap(err, "delete cart")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) UpsertItem(cartID uuid.UUID, productID, quantity int) error {
	if _, err := r.db.Exec(upsertItemQuery, cartID, productID, quantity); err != nil {
		// a foreign key violation means the cart vanished under us
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return errors.Wrap(err, "upsert cart item")
	}

	return nil
}

func (r *PostgresRepository) UpdateItem(cartID uuid.UUID, itemID, quantity int) error {
	res, err := r.db.Exec(updateItemQuery, quantity, cartID, itemID)
	if err != nil {
		return errors.Wrap(err, "update cart item")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (r *PostgresRepository) RemoveItem(cartID uuid.UUID, itemID int) error {
	res, err := r.db.Exec(removeItemQuery, cartID, itemID)
	if err != nil {
		return errors.Wrap(err, "remove cart item")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}

	return nil
}
