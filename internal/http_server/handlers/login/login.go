package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"tutorly_auth/internal/auth"
	resp "tutorly_auth/internal/lib/api/response"
	sl "tutorly_auth/internal/lib/logger"
	"tutorly_auth/internal/lib/session"
)

type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	resp.Response
	Token      string `json:"token,omitempty"`
	IsVerified bool   `json:"isVerified,omitempty"`
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authService *auth.Auth,
	sessionTTL time.Duration,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Please enter all fields"))

			return
		}

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := authService.Login(ctx, req.Email, req.Password)
		if err != nil {
			// One message for unknown email and wrong password alike.
			if errors.Is(err, auth.ErrInvalidCredentials) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Authentication failed"))

				return
			}

			log.Error("failed to login user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal server error"))

			return
		}

		if !user.IsVerified {
			// Soft block: the token is returned so the client can offer a
			// resend, but no session cookie is set.
			render.JSON(w, r, Response{
				Response: resp.Error("Please verify your email"),
				Token:    user.Token,
			})

			return
		}

		session.SetCookie(w, user.Token, sessionTTL)

		log.Info("User logged in successfully")

		render.JSON(w, r, Response{
			Response:   resp.OK("Login successful"),
			Token:      user.Token,
			IsVerified: user.IsVerified,
		})
	}
}
