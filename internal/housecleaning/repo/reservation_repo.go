package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/database"
)

// constraintFields maps FK constraint names to the request field they guard.
var constraintFields = map[string]string{
	"fk_hr_service_starting_time": "starting_time_id",
	"fk_hr_service_duration":      "service_duration_id",
	"fk_hr_reserve_cycle":         "reserve_cycle_id",
	"fk_hr_status":                "status_id",
}

type ReservationRepo struct {
	db *sqlx.DB
}

func NewReservationRepo(db *sqlx.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// EnsureTable creates housecleaning_reservations. Lookup tables and users must exist first.
func (r *ReservationRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS housecleaning_reservations (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT NOT NULL,
  service_starting_time_id BIGINT NOT NULL,
  service_duration_id BIGINT NOT NULL,
  reserve_cycle_id BIGINT NOT NULL,
  status_id BIGINT NOT NULL,
  service_start_date DATE NOT NULL,
  reserve_location VARCHAR(200) NOT NULL,
  have_pet BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CONSTRAINT fk_hr_user FOREIGN KEY (user_id) REFERENCES users(id),
  CONSTRAINT fk_hr_service_starting_time FOREIGN KEY (service_starting_time_id) REFERENCES service_starting_times(id),
  CONSTRAINT fk_hr_service_duration FOREIGN KEY (service_duration_id) REFERENCES service_durations(id),
  CONSTRAINT fk_hr_reserve_cycle FOREIGN KEY (reserve_cycle_id) REFERENCES reserve_cycles(id),
  CONSTRAINT fk_hr_status FOREIGN KEY (status_id) REFERENCES statuses(id)
);
CREATE INDEX IF NOT EXISTS idx_hr_user_status ON housecleaning_reservations(user_id, status_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts one reservation and sets its ID. A dangling reference is
// returned as apperr.ReferenceNotFound for the matching field.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	const q = `INSERT INTO housecleaning_reservations
		(user_id, service_starting_time_id, service_duration_id, reserve_cycle_id, status_id, service_start_date, reserve_location, have_pet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRowxContext(ctx, q,
		res.UserID,
		res.ServiceStartingTimeID,
		res.ServiceDurationID,
		res.ReserveCycleID,
		res.StatusID,
		res.ServiceStartDate,
		res.ReserveLocation,
		res.HavePet,
	).Scan(&res.ID)
	if err != nil {
		if constraint, ok := database.IsForeignKeyViolation(err); ok {
			if field, known := constraintFields[constraint]; known {
				return apperr.ReferenceNotFound(field)
			}
		}
		return fmt.Errorf("insert housecleaning reservation: %w", err)
	}
	return nil
}

// ListByUser returns the user's reservations in the given status ordered by id.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID, statusID int64) ([]entity.View, error) {
	const q = `SELECT h.id, u.name, rc.reserve_cycle, sd.service_duration, st.starting_time,
		to_char(h.service_start_date, 'YYYY-MM-DD') AS service_start_date,
		h.reserve_location, h.have_pet, s.status
	FROM housecleaning_reservations h
	JOIN users u ON u.id = h.user_id
	JOIN reserve_cycles rc ON rc.id = h.reserve_cycle_id
	JOIN service_durations sd ON sd.id = h.service_duration_id
	JOIN service_starting_times st ON st.id = h.service_starting_time_id
	JOIN statuses s ON s.id = h.status_id
	WHERE h.user_id = $1 AND h.status_id = $2
	ORDER BY h.id`
	out := []entity.View{}
	if err := r.db.SelectContext(ctx, &out, q, userID, statusID); err != nil {
		return nil, fmt.Errorf("list housecleaning reservations: %w", err)
	}
	return out, nil
}
