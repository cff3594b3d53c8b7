package catalog

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
)

// Store is the read surface of the lookup tables.
type Store interface {
	List(ctx context.Context, v entity.Variant) ([]entity.Option, error)
	Exists(ctx context.Context, v entity.Variant, id int64) (bool, error)
}

// Service serves lookup rows to the catalog endpoints and resolves
// references for the reservation writers.
type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

// List returns every option of the variant, possibly empty, ordered by id.
func (s *Service) List(ctx context.Context, v entity.Variant) ([]entity.Option, error) {
	return s.store.List(ctx, v)
}

// Exists reports whether id is a row of the variant. Non-positive ids never resolve.
func (s *Service) Exists(ctx context.Context, v entity.Variant, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.store.Exists(ctx, v, id)
}
