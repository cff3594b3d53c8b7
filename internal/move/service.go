// Package move records moving-service bookings and lists them back to their owner.
package move

import (
	"context"
	"unicode/utf8"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	catalog "github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/move/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/notify"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/metrics"
)

type Repo interface {
	Create(ctx context.Context, res *entity.Reservation) error
	ListByUser(ctx context.Context, userID int64) ([]entity.View, error)
}

type References interface {
	Exists(ctx context.Context, v catalog.Variant, id int64) (bool, error)
}

type CreateRequest struct {
	MoveCategoryID *int64  `json:"move_category_id"`
	Address        *string `json:"address"`
	MobileNumber   *string `json:"mobile_number"`
}

type Service struct {
	repo     Repo
	refs     References
	notifier notify.Notifier
}

func NewService(repo Repo, refs References, notifier notify.Notifier) *Service {
	return &Service{repo: repo, refs: refs, notifier: notifier}
}

func (req CreateRequest) validate() error {
	if req.MoveCategoryID != nil && *req.MoveCategoryID > entity.MaxCategoryID {
		return apperr.OutOfRange("move_category_id", apperr.CodeChooseOption)
	}
	if req.MobileNumber != nil && utf8.RuneCountInString(*req.MobileNumber) != user.MobileNumberLength {
		return apperr.OutOfRange("mobile_number", apperr.CodeInvalidPhoneNumber)
	}
	switch {
	case req.MoveCategoryID == nil:
		return apperr.MissingField("move_category_id")
	case req.Address == nil:
		return apperr.MissingField("address")
	case req.MobileNumber == nil:
		return apperr.MissingField("mobile_number")
	}
	if utf8.RuneCountInString(*req.Address) > entity.MaxAddressLength {
		return apperr.InvalidValue("address")
	}
	return nil
}

// Create stores one move reservation owned by id and texts the number given in the payload.
func (s *Service) Create(ctx context.Context, id auth.Identity, req CreateRequest) error {
	if err := req.validate(); err != nil {
		return err
	}
	ok, err := s.refs.Exists(ctx, catalog.MoveCategory, *req.MoveCategoryID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ReferenceNotFound(catalog.MoveCategory.Field)
	}

	res := &entity.Reservation{
		UserID:         id.UserID,
		MoveCategoryID: *req.MoveCategoryID,
		Address:        *req.Address,
		MobileNumber:   *req.MobileNumber,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return err
	}
	metrics.ReservationsCreated.WithLabelValues("move").Inc()

	s.notifier.Notify(ctx, notify.Message{MobileNumber: res.MobileNumber, Address: res.Address})
	return nil
}

func (s *Service) ListMine(ctx context.Context, id auth.Identity) ([]entity.View, error) {
	return s.repo.ListByUser(ctx, id.UserID)
}
