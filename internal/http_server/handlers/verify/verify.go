package verify

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"tutorly_auth/internal/auth"
	sl "tutorly_auth/internal/lib/logger"
	"tutorly_auth/internal/storage"
)

// New handles the bare link click from the verification mail, so it answers
// with a human-readable page rather than JSON.
func New(
	log *slog.Logger,
	authService *auth.Auth,
	frontendURL string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verify.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		data := pageData{FrontendURL: frontendURL}

		token := r.URL.Query().Get("token")
		if token == "" {
			log.Warn("missing verification token")

			renderPage(w, log, errorPage, http.StatusBadRequest, data)

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		outcome, err := authService.ConfirmEmail(ctx, token)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				renderPage(w, log, notFoundPage, http.StatusNotFound, data)

				return
			}

			log.Error("failed to confirm email", sl.Err(err))

			renderPage(w, log, errorPage, http.StatusBadRequest, data)

			return
		}

		switch outcome {
		case auth.AlreadyVerified:
			renderPage(w, log, alreadyVerifiedPage, http.StatusOK, data)
		default:
			log.Info("email verified successfully")

			renderPage(w, log, successPage, http.StatusOK, data)
		}
	}
}

func renderPage(w http.ResponseWriter, log *slog.Logger, page *template.Template, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := page.Execute(w, data); err != nil {
		log.Error("failed to render page", sl.Err(err))
	}
}
