package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

// ErrUnknownUser is returned by a UserResolver when the token's user no longer exists.
var ErrUnknownUser = errors.New("unknown user")

// Identity is the authenticated caller handed to protected handlers.
type Identity struct {
	UserID       int64
	Name         string
	MobileNumber string
}

// UserResolver loads the caller behind a verified token.
type UserResolver interface {
	Identity(ctx context.Context, userID int64) (Identity, error)
}

// AuthedHandlerFunc is a handler that receives the caller explicitly.
type AuthedHandlerFunc func(w http.ResponseWriter, r *http.Request, id Identity)

type Middleware struct {
	tokens *Tokens
	users  UserResolver
	logger *zap.SugaredLogger
}

func NewMiddleware(tokens *Tokens, users UserResolver, logger *zap.SugaredLogger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Protect rejects unauthenticated requests with 401 before next runs.
func (m *Middleware) Protect(next AuthedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			apperr.Write(w, apperr.Unauthenticated(apperr.CodeInvalidToken))
			return
		}
		userID, err := m.tokens.Parse(token)
		if err != nil {
			m.logger.Debugw("token rejected", "err", err)
			apperr.Write(w, apperr.Unauthenticated(apperr.CodeInvalidToken))
			return
		}
		id, err := m.users.Identity(r.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrUnknownUser) {
				apperr.Write(w, apperr.Unauthenticated(apperr.CodeInvalidUser))
				return
			}
			m.logger.Errorw("resolve identity failed", "request_id", r.Header.Get(utilities.RequestIDHeader), "user_id", userID, "err", err)
			utilities.WriteMessage(w, http.StatusInternalServerError, apperr.CodeInternal)
			return
		}
		next(w, r, id)
	}
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	parts := strings.Fields(strings.TrimSpace(header))
	switch {
	case len(parts) == 1:
		return parts[0]
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1]
	default:
		return ""
	}
}
