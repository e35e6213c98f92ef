package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"tutorly_auth/internal/http_server/middleware/authn"
	resp "tutorly_auth/internal/lib/api/response"
)

type Response struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// New serves the dashboard's user-resolution call; it runs behind the session
// guard, which has already attached the credential record.
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := authn.UserFromContext(r.Context())
		if !ok {
			log.Error("no user in request context")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("Unauthorized"))

			return
		}

		render.JSON(w, r, Response{
			Name:       user.Name,
			Email:      user.Email,
			IsVerified: user.IsVerified,
		})
	}
}
