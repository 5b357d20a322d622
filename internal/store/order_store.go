package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/inventra/internal/model"
)

// PostgresOrderStore implements OrderStore on PostgreSQL.
type PostgresOrderStore struct {
	db *sqlx.DB
}

func NewPostgresOrderStore(db *sqlx.DB) *PostgresOrderStore {
	return &PostgresOrderStore{db: db}
}

// Create inserts the order and decrements stock for every line in one
// transaction. The decrement carries its own quantity guard, so the update
// matches zero rows when stock ran out between the caller's check and the
// commit; that aborts the transaction instead of overselling.
func (s *PostgresOrderStore) Create(ctx context.Context, o *model.Order) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin order tx")
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, total_amount, status, created_at)
		VALUES (:id, :customer_name, :customer_email, :total_amount, :status, :created_at)`, o)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}

	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = quantity - $1, updated_at = now()
			WHERE id = $2 AND quantity >= $1`, item.Quantity, item.ProductID)
		if err != nil {
			return errors.Wrap(err, "decrement stock")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "rows affected")
		}
		if n == 0 {
			return ErrInsufficientStock
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			o.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice)
		if err != nil {
			return errors.Wrap(err, "insert order item")
		}
	}

	return errors.Wrap(tx.Commit(), "commit order tx")
}

func (s *PostgresOrderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := s.db.GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}
	if err := s.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresOrderStore) List(ctx context.Context) ([]model.Order, error) {
	orders := []model.Order{}
	err := s.db.SelectContext(ctx, &orders, `SELECT * FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *PostgresOrderStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since)
	return n, errors.Wrap(err, "count orders")
}

func (s *PostgresOrderStore) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res, err := s.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	return checkFound(res)
}

// Delete removes the order and its line items. Stock is not restored.
func (s *PostgresOrderStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	return checkFound(res)
}

func (s *PostgresOrderStore) loadItems(ctx context.Context, o *model.Order) error {
	o.Items = []model.OrderItem{}
	err := s.db.SelectContext(ctx, &o.Items, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = $1`, o.ID)
	return errors.Wrap(err, "load order items")
}
