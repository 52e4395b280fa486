package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/logging"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
)

// Authenticate resolves a bearer token in the Authorization header into a
// principal on the request context. Requests without a usable token are
// forwarded unchanged; the middleware never writes a response.
func Authenticate(v auth.TokenValidator, l logging.Logger, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)

			ctx, err := auth.Authenticate(r.Context(), v, header, now())
			if err != nil {
				if !errors.Is(err, auth.ErrNoBearerToken) {
					l.Debug(r.Context(), "token rejected", "path", r.URL.Path, "reason", err.Error())
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuthenticated answers 401 unless a principal is attached.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, errUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// AccessLog writes one info line per request.
func AccessLog(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			l.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
