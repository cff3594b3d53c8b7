package housecleaning

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

const successMessage = "success"

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

type listResponse struct {
	Orders []entity.View `json:"hr_orders"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req CreateRequest
	if err := utilities.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Debugw("invalid housecleaning payload", "user_id", id.UserID, "err", err)
		apperr.Write(w, apperr.InvalidValue("body"))
		return
	}
	if err := h.svc.Create(r.Context(), id, req); err != nil {
		if status, _ := apperr.Status(err); status >= http.StatusInternalServerError {
			h.logger.Errorw("create housecleaning reservation failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "user_id", id.UserID, "err", err)
		}
		apperr.Write(w, err)
		return
	}
	utilities.WriteMessage(w, http.StatusOK, successMessage)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	views, err := h.svc.ListMine(r.Context(), id)
	if err != nil {
		h.logger.Errorw("list housecleaning reservations failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "user_id", id.UserID, "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, listResponse{Orders: views})
}
