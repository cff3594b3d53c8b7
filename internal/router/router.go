package router

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/move"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/metrics"
	"github.com/ovaphlow/pitchfork/service-reservation-go/pkg/utilities"
)

const RequestIDHeader = utilities.RequestIDHeader

// statusRecorder wraps http.ResponseWriter to capture status and size.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.size += n
	return n, err
}

func (sr *statusRecorder) code() int {
	if sr.status == 0 {
		return http.StatusOK
	}
	return sr.status
}

// RequestIDMiddleware propagates X-Request-ID, minting a KSUID when the caller sent none.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = utilities.NewRequestID()
				r.Header.Set(RequestIDHeader, id)
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			logger.Debugw("http request",
				"request_id", r.Header.Get(RequestIDHeader),
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", sr.code(),
				"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
				"size", sr.size,
			)
		})
	}
}

// MetricsMiddleware records request counts and latency labelled by the matched mux pattern.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sr.code())).Inc()
			metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// SecurityHeadersMiddleware sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none';")
			}
			// HSTS only over TLS
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Deps are the handlers mounted by RegisterRoutes.
type Deps struct {
	Auth          *auth.Middleware
	Users         *user.Handler
	Catalog       *catalog.Handler
	Housecleaning *housecleaning.Handler
	Move          *move.Handler
}

// RegisterRoutes mounts HTTP handlers on the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /users/signup", d.Users.Signup)
	mux.HandleFunc("POST /users/signin", d.Users.Signin)

	mux.HandleFunc("GET /housecleaning/reserve-cycles", d.Catalog.List(entity.ReserveCycle, "ReserverCycle"))
	mux.HandleFunc("GET /housecleaning/service-durations", d.Catalog.List(entity.ServiceDuration, "ServiceDurations"))
	mux.HandleFunc("GET /housecleaning/starting-times", d.Catalog.List(entity.ServiceStartingTime, "ServiceStartingTimes"))
	mux.HandleFunc("GET /housecleaning/day-of-weeks", d.Catalog.List(entity.ServiceDayOfWeek, "ServiceDayOfWeeks"))
	mux.HandleFunc("POST /housecleaning/reservations", d.Auth.Protect(d.Housecleaning.Create))
	mux.HandleFunc("GET /housecleaning/reservations", d.Auth.Protect(d.Housecleaning.ListMine))

	mux.HandleFunc("GET /move/categories", d.Catalog.List(entity.MoveCategory, "move_categories"))
	mux.HandleFunc("POST /move/reservations", d.Auth.Protect(d.Move.Create))
	mux.HandleFunc("GET /move/reservations", d.Auth.Protect(d.Move.ListMine))

	return RequestIDMiddleware()(
		LoggingMiddleware(logger)(
			MetricsMiddleware()(
				SecurityHeadersMiddleware()(mux))))
}
