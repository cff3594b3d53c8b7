package catalog

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

// Handler exposes the public lookup lists.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

// NewHandler constructs a new Handler.
func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List returns a handler writing {key: [rows...]} for the variant.
func (h *Handler) List(v entity.Variant, key string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := h.svc.List(r.Context(), v)
		if err != nil {
			h.logger.Errorw("list catalog failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "table", v.Table, "err", err)
			utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
			return
		}
		rows := make([]map[string]any, 0, len(opts))
		for _, o := range opts {
			rows = append(rows, o.Row(v))
		}
		utilities.WriteJSON(w, http.StatusOK, map[string]any{key: rows})
	}
}
