package authn

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tutorly_auth/internal/lib/api/response"
	"tutorly_auth/internal/lib/jwt"
	sl "tutorly_auth/internal/lib/logger"
	"tutorly_auth/internal/lib/session"
	"tutorly_auth/internal/models"
)

type contextKey struct{}

var userKey contextKey

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

// New gates protected routes: extract token (cookie first, then bearer
// header), verify the signature and expiry, resolve the identity to a live
// record, attach it to the request context. Any failure is a uniform 401.
//
// The presented token is not compared against the record's stored token, so a
// superseded-but-unexpired session is still accepted here; only the stored
// token revokes via the verification-link lookup.
func New(log *slog.Logger, secret string, provider UserProvider) func(http.Handler) http.Handler {
	const op = "middleware.authn.New"

	log = log.With(slog.String("op", op))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r)
			if token == "" {
				unauthorized(w, r)
				return
			}

			email, err := jwt.ParseToken(token, secret)
			if err != nil {
				log.Warn("invalid session token", sl.Err(err))
				unauthorized(w, r)
				return
			}

			user, err := provider.UserByEmail(r.Context(), email)
			if err != nil {
				log.Warn("session user not found", slog.String("email", email))
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the record attached by the guard.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error("Unauthorized"))
}
