package repo

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/user/entity"
)

// UserRepo provides data access for users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE EXTENSION IF NOT EXISTS citext;
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name VARCHAR(45) NOT NULL,
  email CITEXT NOT NULL UNIQUE,
  mobile_number VARCHAR(11) NOT NULL,
  password_hash TEXT NOT NULL,
  password_algo TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new user row. Returns new ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	q := `INSERT INTO users (name,email,mobile_number,password_hash,password_algo)
		  VALUES (:name,:email,:mobile_number,:password_hash,:password_algo) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, u)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&u.ID); err != nil {
			return 0, err
		}
		return u.ID, nil
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("no id returned")
}

// GetByEmail returns a user matched by email (case-insensitive due to citext) or sql.ErrNoRows.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, name, email, mobile_number, password_hash, password_algo, created_at, updated_at
	  FROM users WHERE email=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, email); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetContact returns the name and mobile number of a user or sql.ErrNoRows.
func (r *UserRepo) GetContact(ctx context.Context, id int64) (*entity.Contact, error) {
	const q = `SELECT id, name, mobile_number FROM users WHERE id=$1`
	var c entity.Contact
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}
