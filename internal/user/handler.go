package user

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// Handler exposes HTTP endpoints for user operations (signup / signin).
type Handler struct {
	svc    *UserService
	tokens TokenIssuer
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, tokens TokenIssuer, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// SignupRequest request body for signup endpoint.
type SignupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Password     string `json:"password"`
}

// SignupResponse response body containing new user id.
type SignupResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utilities.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Debugw("invalid signup payload", "err", err)
		apperr.Write(w, apperr.InvalidValue("body"))
		return
	}
	id, err := h.svc.SignupUser(r.Context(), SignupInput(req))
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingField):
			utilities.WriteMessage(w, http.StatusBadRequest, apperr.CodeInvalidKeys)
		case errors.Is(err, ErrInvalidMobile):
			utilities.WriteMessage(w, http.StatusBadRequest, apperr.CodeInvalidPhoneNumber)
		case errors.Is(err, ErrNameTooLong):
			apperr.Write(w, apperr.InvalidValue("name"))
		case errors.Is(err, ErrEmailTaken):
			utilities.WriteMessage(w, http.StatusConflict, "EMAIL_ALREADY_EXISTS")
		default:
			h.logger.Errorw("signup failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "err", err)
			utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
		}
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, SignupResponse{ID: id})
}

// SigninRequest login payload.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninResponse carries the bearer token for protected endpoints.
type SigninResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := utilities.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Debugw("invalid signin payload", "err", err)
		apperr.Write(w, apperr.InvalidValue("body"))
		return
	}
	id, err := h.svc.AuthenticatePassword(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			utilities.WriteMessage(w, http.StatusUnauthorized, apperr.CodeInvalidUser)
			return
		}
		h.logger.Errorw("signin failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
		return
	}
	token, err := h.tokens.Issue(id)
	if err != nil {
		h.logger.Errorw("issue token failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "user_id", id, "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
		return
	}
	utilities.WriteJSON(w, http.StatusOK, SigninResponse{AccessToken: token})
}
