package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/example/inventra/internal/model"
)

// PostgresProductStore implements ProductStore on PostgreSQL.
type PostgresProductStore struct {
	db *sqlx.DB
}

func NewPostgresProductStore(db *sqlx.DB) *PostgresProductStore {
	return &PostgresProductStore{db: db}
}

func (s *PostgresProductStore) Create(ctx context.Context, p *model.Product) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO products (id, name, sku, category, price, quantity, reorder_level,
		                      supplier_id, last_restocked, image_url, created_at, updated_at)
		VALUES (:id, :name, :sku, :category, :price, :quantity, :reorder_level,
		        :supplier_id, :last_restocked, :image_url, :created_at, :updated_at)`, p)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert product")
}

func (s *PostgresProductStore) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := s.db.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	return &p, nil
}

func (s *PostgresProductStore) List(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := s.db.SelectContext(ctx, &products, `SELECT * FROM products ORDER BY created_at DESC`)
	return products, errors.Wrap(err, "list products")
}

func (s *PostgresProductStore) ListLowStock(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := s.db.SelectContext(ctx, &products,
		`SELECT * FROM products WHERE quantity <= reorder_level ORDER BY quantity ASC`)
	return products, errors.Wrap(err, "list low stock products")
}

func (s *PostgresProductStore) Update(ctx context.Context, p *model.Product) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE products
		SET name = :name, sku = :sku, category = :category, price = :price,
		    quantity = :quantity, reorder_level = :reorder_level, supplier_id = :supplier_id,
		    last_restocked = :last_restocked, image_url = :image_url, updated_at = :updated_at
		WHERE id = :id`, p)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	return checkFound(res)
}

func (s *PostgresProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
