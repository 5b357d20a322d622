package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/inventra/internal/model"
)

// PostgresSupplierStore implements SupplierStore on PostgreSQL.
type PostgresSupplierStore struct {
	db *sqlx.DB
}

func NewPostgresSupplierStore(db *sqlx.DB) *PostgresSupplierStore {
	return &PostgresSupplierStore{db: db}
}

func (s *PostgresSupplierStore) Create(ctx context.Context, sup *model.Supplier) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO suppliers (id, name, contact_email, contact_phone, address,
		                       rating, last_supplied, created_at, updated_at)
		VALUES (:id, :name, :contact_email, :contact_phone, :address,
		        :rating, :last_supplied, :created_at, :updated_at)`, sup)
	return errors.Wrap(err, "insert supplier")
}

func (s *PostgresSupplierStore) GetByID(ctx context.Context, id string) (*model.Supplier, error) {
	var sup model.Supplier
	err := s.db.GetContext(ctx, &sup, `SELECT * FROM suppliers WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select supplier")
	}
	return &sup, nil
}

func (s *PostgresSupplierStore) List(ctx context.Context) ([]model.Supplier, error) {
	suppliers := []model.Supplier{}
	err := s.db.SelectContext(ctx, &suppliers, `SELECT * FROM suppliers ORDER BY created_at DESC`)
	return suppliers, errors.Wrap(err, "list suppliers")
}

func (s *PostgresSupplierStore) Update(ctx context.Context, sup *model.Supplier) error {
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE suppliers
		SET name = :name, contact_email = :contact_email, contact_phone = :contact_phone,
		    address = :address, rating = :rating, last_supplied = :last_supplied,
		    updated_at = :updated_at
		WHERE id = :id`, sup)
	if err != nil {
		return errors.Wrap(err, "update supplier")
	}
	return checkFound(res)
}

func (s *PostgresSupplierStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete supplier")
	}
	return checkFound(res)
}

func (s *PostgresSupplierStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM suppliers`)
	return n, errors.Wrap(err, "count suppliers")
}
