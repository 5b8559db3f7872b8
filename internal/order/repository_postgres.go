package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	cartExistsQuery = `SELECT EXISTS(SELECT 1 FROM carts WHERE id = $1)`

	// the snapshot read happens inside the checkout transaction so every
	// line item reflects one point-in-time view of the catalog
	snapshotItemsQuery = `
		SELECT ci.product_id, ci.quantity, p.title, p.unit_price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`
	insertOrderQuery = `
		INSERT INTO orders (customer_id, payment_status, placed_at)
		VALUES ($1, $2, now())
		RETURNING id, placed_at
	`
	deleteCheckedOutCartQuery = `DELETE FROM carts WHERE id = $1`

	getOrderQuery = `
		SELECT id, customer_id, placed_at, payment_status
		FROM orders
		WHERE id = $1
	`
	listOrdersQuery = `
		SELECT id, customer_id, placed_at, payment_status
		FROM orders
		ORDER BY id
	`
	listOrdersByCustomerQuery = `
		SELECT id, customer_id, placed_at, payment_status
		FROM orders
		WHERE customer_id = $1
		ORDER BY id
	`
	// item rows join the catalog for the product's current title and price;
	// oi.unit_price stays the snapshot taken at checkout
	listItemsQuery = `
		SELECT oi.order_id, oi.id, oi.unit_price, oi.quantity, p.id, p.title, p.unit_price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::int[])
		ORDER BY oi.id
	`
	updatePaymentStatusQuery = `
		UPDATE orders SET payment_status = $1 WHERE id = $2
		RETURNING id, customer_id, placed_at, payment_status
	`
	deleteOrderItemsQuery = `DELETE FROM order_items WHERE order_id = $1`
	deleteOrderQuery      = `DELETE FROM orders WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateFromCart runs the whole checkout as one transaction: validate the
// cart, snapshot its items with the catalog's current prices, create the
// order, write the items, delete the cart. The deferred rollback is a no-op
// after a successful commit.
func (r *PostgresRepository) CreateFromCart(ctx context.Context, cartID uuid.UUID, customerID int) (Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, errors.Wrap(err, "begin checkout")
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, cartExistsQuery, cartID).Scan(&exists); err != nil {
		return Order{}, errors.Wrap(err, "check cart")
	}
	if !exists {
		return Order{}, ErrCartNotFound
	}

	items, err := snapshotItems(ctx, tx, cartID)
	if err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, ErrCartEmpty
	}

	ord := Order{CustomerID: customerID, PaymentStatus: PaymentStatusPending}
	if err := tx.QueryRowContext(ctx, insertOrderQuery, customerID, PaymentStatusPending).Scan(&ord.ID, &ord.PlacedAt); err != nil {
		return Order{}, errors.Wrap(err, "insert order")
	}

	if err := insertItems(ctx, tx, ord.ID, items); err != nil {
		return Order{}, err
	}
	ord.Items = items

	res, err := tx.ExecContext(ctx, deleteCheckedOutCartQuery, cartID)
	if err != nil {
		return Order{}, errors.Wrap(err, "delete cart")
	}
	// zero rows means a concurrent checkout of the same cart won the race
	if n, _ := res.RowsAffected(); n == 0 {
		return Order{}, ErrCartNotFound
	}

	if err := tx.Commit(); err != nil {
		return Order{}, errors.Wrap(err, "commit checkout")
	}

	return ord, nil
}

func snapshotItems(ctx context.Context, tx *sql.Tx, cartID uuid.UUID) ([]Item, error) {
	rows, err := tx.QueryContext(ctx, snapshotItemsQuery, cartID)
	if err != nil {
		return nil, errors.Wrap(err, "snapshot cart items")
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.Product.ID, &it.Quantity, &it.Product.Title, &it.Product.UnitPrice); err != nil {
			return nil, errors.Wrap(err, "scan cart item")
		}
		it.UnitPrice = it.Product.UnitPrice
		items = append(items, it)
	}

	return items, rows.Err()
}

// insertItems writes all order items in one statement and fills in the
// generated ids.
func insertItems(ctx context.Context, tx *sql.Tx, orderID int, items []Item) error {
	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*3+1)
	args = append(args, orderID)
	for _, it := range items {
		base := len(args)
		args = append(args, it.Product.ID, it.UnitPrice, it.Quantity)
		values = append(values, fmt.Sprintf("($1, $%d, $%d, $%d)", base+1, base+2, base+3))
	}

	query := `INSERT INTO order_items (order_id, product_id, unit_price, quantity) VALUES ` +
		strings.Join(values, ", ") + ` RETURNING id`

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "insert order items")
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&items[i].ID); err != nil {
			return errors.Wrap(err, "scan order item id")
		}
	}

	return rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	var ord Order
	err := r.db.QueryRow(getOrderQuery, id).Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, errors.Wrap(err, "get order")
	}

	orders := []Order{ord}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}

	return orders[0], nil
}

func (r *PostgresRepository) ListAll() ([]Order, error) {
	return r.list(listOrdersQuery)
}

func (r *PostgresRepository) ListByCustomer(customerID int) ([]Order, error) {
	return r.list(listOrdersByCustomerQuery, customerID)
}

func (r *PostgresRepository) list(query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus); err != nil {
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items of all given orders in one query.
func (r *PostgresRepository) attachItems(orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	index := make(map[int]int, len(orders))
	for i := range orders {
		orders[i].Items = []Item{}
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = i
	}

	rows, err := r.db.Query(listItemsQuery, pq.Array(ids))
	if err != nil {
		return errors.Wrap(err, "list order items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int
			it      Item
		)
		if err := rows.Scan(&orderID, &it.ID, &it.UnitPrice, &it.Quantity, &it.Product.ID, &it.Product.Title, &it.Product.UnitPrice); err != nil {
			return errors.Wrap(err, "scan order item")
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, it)
	}

	return rows.Err()
}

func (r *PostgresRepository) UpdatePaymentStatus(id int, status string) (Order, error) {
	var ord Order
	err := r.db.QueryRow(updatePaymentStatusQuery, status, id).Scan(&ord.ID, &ord.CustomerID, &ord.PlacedAt, &ord.PaymentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, errors.Wrap(err, "update payment status")
	}

	orders := []Order{ord}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}

	return orders[0], nil
}

func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin delete order")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteOrderItemsQuery, id); err != nil {
		return errors.Wrap(err, "delete order items")
	}

	res, err := tx.Exec(deleteOrderQuery, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return errors.Wrap(tx.Commit(), "commit delete order")
}
