// Package housecleaning records housecleaning bookings and lists them back to their owner.
package housecleaning

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	catalog "github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/notify"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/metrics"
)

type Repo interface {
	Create(ctx context.Context, res *entity.Reservation) error
	ListByUser(ctx context.Context, userID, statusID int64) ([]entity.View, error)
}

// References resolves lookup ids. *catalog.Service satisfies it.
type References interface {
	Exists(ctx context.Context, v catalog.Variant, id int64) (bool, error)
}

// CreateRequest is the booking payload. Pointers distinguish absent keys from zero values.
type CreateRequest struct {
	ServiceStartingTimeID *int64  `json:"service_starting_time_id"`
	ServiceDurationID     *int64  `json:"service_duration_id"`
	ReserveCycleID        *int64  `json:"reserve_cycle_id"`
	StatusID              *int64  `json:"status_id"`
	ServiceStartDate      *string `json:"service_start_date"`
	ReserveLocation       *string `json:"reserve_location"`
	HavePet               *int    `json:"have_pet"`
}

type Service struct {
	repo     Repo
	refs     References
	notifier notify.Notifier
}

func NewService(repo Repo, refs References, notifier notify.Notifier) *Service {
	return &Service{repo: repo, refs: refs, notifier: notifier}
}

func (req CreateRequest) missing() string {
	switch {
	case req.ServiceStartingTimeID == nil:
		return "service_starting_time_id"
	case req.ServiceDurationID == nil:
		return "service_duration_id"
	case req.ReserveCycleID == nil:
		return "reserve_cycle_id"
	case req.StatusID == nil:
		return "status_id"
	case req.ServiceStartDate == nil:
		return "service_start_date"
	case req.ReserveLocation == nil:
		return "reserve_location"
	}
	return ""
}

// Create validates req, stores one reservation owned by id and sends one
// SMS to the owner's stored number.
func (s *Service) Create(ctx context.Context, id auth.Identity, req CreateRequest) error {
	if field := req.missing(); field != "" {
		return apperr.MissingField(field)
	}
	if utf8.RuneCountInString(*req.ReserveLocation) > entity.MaxLocationLength {
		return apperr.InvalidValue("reserve_location")
	}

	checks := []struct {
		variant catalog.Variant
		id      int64
	}{
		{catalog.ReserveCycle, *req.ReserveCycleID},
		{catalog.ServiceDuration, *req.ServiceDurationID},
		{catalog.ServiceStartingTime, *req.ServiceStartingTimeID},
		{catalog.Status, *req.StatusID},
	}
	for _, c := range checks {
		ok, err := s.refs.Exists(ctx, c.variant, c.id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ReferenceNotFound(c.variant.Field)
		}
	}

	date, err := time.Parse(entity.DateLayout, *req.ServiceStartDate)
	if err != nil {
		return apperr.InvalidFieldValue("service_start_date")
	}

	res := &entity.Reservation{
		UserID:                id.UserID,
		ServiceStartingTimeID: *req.ServiceStartingTimeID,
		ServiceDurationID:     *req.ServiceDurationID,
		ReserveCycleID:        *req.ReserveCycleID,
		StatusID:              *req.StatusID,
		ServiceStartDate:      date,
		ReserveLocation:       *req.ReserveLocation,
		HavePet:               req.HavePet != nil && *req.HavePet == 1,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return err
	}
	metrics.ReservationsCreated.WithLabelValues("housecleaning").Inc()

	s.notifier.Notify(ctx, notify.Message{MobileNumber: id.MobileNumber, Address: res.ReserveLocation})
	return nil
}

// ListMine returns the caller's active reservations ordered by id.
func (s *Service) ListMine(ctx context.Context, id auth.Identity) ([]entity.View, error) {
	return s.repo.ListByUser(ctx, id.UserID, entity.ActiveStatusID)
}
