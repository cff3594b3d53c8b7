package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
)

// OptionRepo reads the lookup tables.
type OptionRepo struct {
	db *sqlx.DB
}

func NewOptionRepo(db *sqlx.DB) *OptionRepo { return &OptionRepo{db: db} }

// EnsureTable creates every lookup table if it does not exist.
func (r *OptionRepo) EnsureTable(ctx context.Context) error {
	for _, v := range entity.Variants {
		ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id BIGSERIAL PRIMARY KEY,
  %s VARCHAR(45) NOT NULL
)`, v.Table, v.LabelColumn)
		if _, err := r.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s: %w", v.Table, err)
		}
	}
	return nil
}

// List returns all rows of the variant ordered by id.
func (r *OptionRepo) List(ctx context.Context, v entity.Variant) ([]entity.Option, error) {
	q := fmt.Sprintf(`SELECT id, %s AS label FROM %s ORDER BY id`, v.LabelColumn, v.Table)
	out := []entity.Option{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list %s: %w", v.Table, err)
	}
	return out, nil
}

// Exists reports whether id resolves to a row of the variant.
func (r *OptionRepo) Exists(ctx context.Context, v entity.Variant, id int64) (bool, error) {
	q := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, v.Table)
	var ok bool
	if err := r.db.GetContext(ctx, &ok, q, id); err != nil {
		return false, fmt.Errorf("lookup %s %d: %w", v.Table, id, err)
	}
	return ok, nil
}

// Seed inserts labels with ids 1..n. Existing ids are left untouched.
func (r *OptionRepo) Seed(ctx context.Context, v entity.Variant, labels []string) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, %s) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, v.Table, v.LabelColumn)
	for i, label := range labels {
		if _, err := r.db.ExecContext(ctx, q, int64(i+1), label); err != nil {
			return fmt.Errorf("seed %s: %w", v.Table, err)
		}
	}
	// keep BIGSERIAL ahead of the explicit ids
	sq := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))`, v.Table, v.Table)
	if _, err := r.db.ExecContext(ctx, sq); err != nil {
		return fmt.Errorf("sync %s sequence: %w", v.Table, err)
	}
	return nil
}
