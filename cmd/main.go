package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"tutorly_auth/internal/auth"
	"tutorly_auth/internal/config"
	"tutorly_auth/internal/http_server/handlers/login"
	"tutorly_auth/internal/http_server/handlers/me"
	"tutorly_auth/internal/http_server/handlers/register"
	"tutorly_auth/internal/http_server/handlers/resend"
	"tutorly_auth/internal/http_server/handlers/verify"
	"tutorly_auth/internal/http_server/middleware/authn"
	"tutorly_auth/internal/http_server/middleware/cors"
	"tutorly_auth/internal/lib/jwt"
	sl "tutorly_auth/internal/lib/logger"
	"tutorly_auth/internal/lib/verification"
	"tutorly_auth/internal/mail/smtp"
	"tutorly_auth/internal/models"
	"tutorly_auth/internal/rabbitmq"
	"tutorly_auth/internal/storage"
	"tutorly_auth/internal/storage/memory"
	"tutorly_auth/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const evictionInterval = time.Hour

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting tutorly auth service",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Backend),
		slog.String("mail", cfg.Mail.Transport),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	var userStore storage.UserStore
	var memStore *memory.Storage

	switch cfg.Storage.Backend {
	case "postgres":
		pgStore, err := postgres.New(ctx, cfg)
		if err != nil {
			log.Error("failed to connect postgres", sl.Err(err))
			os.Exit(1)
		}
		defer pgStore.Close()

		userStore = pgStore
	default:
		memStore = memory.New()
		userStore = memStore
	}

	var msgSender verification.Publisher

	switch cfg.Mail.Transport {
	case "amqp":
		msgBroker, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
		if err != nil {
			log.Error("failed to connect rabbitmq", sl.Err(err))
			os.Exit(1)
		}
		defer msgBroker.Close()

		msgSender = msgBroker
	default:
		msgSender = &smtp.Mailer{
			Host:     cfg.Mail.SMTPHost,
			Port:     cfg.Mail.SMTPPort,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		}
	}

	authService := auth.New(log, userStore, userStore, cfg.Tokens.Secret, cfg.Tokens.SessionTTL)

	if memStore != nil {
		go runEvictionSweep(ctx, log, memStore, cfg.Tokens.Secret)
	}

	router := setupRouter(log, authService, userStore, msgSender, cfg)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupRouter(
	log *slog.Logger,
	authService *auth.Auth,
	userStore storage.UserStore,
	msgSender verification.Publisher,
	cfg *config.Config,
) *chi.Mux {
	validate := validator.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New())

	r.Post("/register",
		register.New(log, validate, authService, msgSender, cfg.FrontendURL, cfg.Tokens.SessionTTL),
	)
	r.Post("/login",
		login.New(log, validate, authService, cfg.Tokens.SessionTTL),
	)
	r.Post("/resend-email",
		resend.New(log, validate, authService, msgSender, cfg.FrontendURL),
	)
	r.Get("/tutorly/verify-email",
		verify.New(log, authService, cfg.FrontendURL),
	)

	r.Group(func(r chi.Router) {
		r.Use(authn.New(log, cfg.Tokens.Secret, userStore))

		r.Get("/me", me.New(log))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, "Tutorly API is running!")
	})

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

// runEvictionSweep hourly prunes volatile records whose session token no
// longer verifies. It touches only the in-memory backend; the durable backend
// lets expired tokens simply fail verification on access.
func runEvictionSweep(ctx context.Context, log *slog.Logger, store *memory.Storage, secret string) {
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Info("Cleaning up expired sessions...")

			removed := store.Evict(func(u models.User) bool {
				_, err := jwt.ParseToken(u.Token, secret)
				return err != nil
			})

			for _, email := range removed {
				log.Info("Removed expired session", slog.String("email", email))
			}
		}
	}
}
