package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/move/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/database"
)

const categoryConstraint = "fk_mr_move_category"

type ReservationRepo struct {
	db *sqlx.DB
}

func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

func (r *ReservationRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS move_reservations (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT NOT NULL,
  move_category_id BIGINT NOT NULL,
  address VARCHAR(200) NOT NULL,
  mobile_number VARCHAR(11) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT fk_mr_user FOREIGN KEY (user_id) REFERENCES users(id),
  CONSTRAINT fk_mr_move_category FOREIGN KEY (move_category_id) REFERENCES move_categories(id)
);
CREATE INDEX IF NOT EXISTS idx_mr_user ON move_reservations(user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	const q = `INSERT INTO move_reservations (user_id, move_category_id, address, mobile_number)
		VALUES (:user_id, :move_category_id, :address, :mobile_number) RETURNING id`
	rows, err := r.db.NamedQueryContext(ctx, q, res)
	if err != nil {
		if constraint, ok := database.IsForeignKeyViolation(err); ok && constraint == categoryConstraint {
			return apperr.ReferenceNotFound("move_category_id")
		}
		return fmt.Errorf("insert move reservation: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&res.ID); err != nil {
			return fmt.Errorf("scan move reservation id: %w", err)
		}
	}
	return rows.Err()
}

// ListByUser returns every move reservation of the user ordered by id.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID int64) ([]entity.View, error) {
	const q = `SELECT m.id, u.name, c.name AS move_category, m.address, m.mobile_number AS phone_number
	FROM move_reservations m
	JOIN users u ON u.id = m.user_id
	JOIN move_categories c ON c.id = m.move_category_id
	WHERE m.user_id = $1
	ORDER BY m.id`
	out := []entity.View{}
	if err := r.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("list move reservations: %w", err)
	}
	return out, nil
}
