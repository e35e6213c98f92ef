package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tutorly_auth/internal/lib/jwt"
	sl "tutorly_auth/internal/lib/logger"
	"tutorly_auth/internal/models"
	"tutorly_auth/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// ConfirmOutcome is the result of exchanging an inbound verification token.
type ConfirmOutcome int

const (
	VerifiedNow ConfirmOutcome = iota
	AlreadyVerified
)

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	secret      string
	sessionTTL  time.Duration
}

type UserSaver interface {
	CreateUser(ctx context.Context, user models.User) error
	SaveUser(ctx context.Context, user models.User) error
}

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByToken(ctx context.Context, token string) (models.User, error)
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	secret string,
	sessionTTL time.Duration,
) *Auth {
	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		secret:      secret,
		sessionTTL:  sessionTTL,
	}
}

// Register issues a session token and creates an unverified credential record
// carrying it. The returned user holds the token that the verification link
// and the session cookie are both built from.
func (a *Auth) Register(ctx context.Context, name, email, password string) (models.User, error) {
	const op = "auth.Register"

	log := a.log.With(slog.String("op", op))

	token, err := jwt.NewToken(email, a.secret, a.sessionTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:      name,
		Email:     email,
		Password:  password,
		Token:     token,
		CreatedAt: time.Now(),
	}

	if err := a.usrSaver.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
			return models.User{}, ErrUserExists
		}

		log.Error("failed to save user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("email", email))

	return user, nil
}

// Login checks credentials and rotates the stored session token. An unknown
// email and a wrong password fail identically. An unverified account still
// logs in; the caller decides the soft-block response from IsVerified.
func (a *Auth) Login(ctx context.Context, email, password string) (models.User, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	user, err := a.usrProvider.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return models.User{}, ErrInvalidCredentials
		}

		log.Error("failed to get user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if user.Password != password {
		log.Info("invalid credentials")
		return models.User{}, ErrInvalidCredentials
	}

	token, err := jwt.NewToken(email, a.secret, a.sessionTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	// Overwrite, never append: one live session token per identity.
	user.Token = token

	if err := a.usrSaver.SaveUser(ctx, user); err != nil {
		log.Error("failed to save token", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("email", email))

	return user, nil
}

// ConfirmEmail resolves a verification link token by direct store lookup and
// flips the verification flag once. Repeat confirmations are idempotent.
func (a *Auth) ConfirmEmail(ctx context.Context, token string) (ConfirmOutcome, error) {
	const op = "auth.ConfirmEmail"

	log := a.log.With(slog.String("op", op))

	user, err := a.usrProvider.UserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("verification token matches no user")
			return 0, storage.ErrUserNotFound
		}

		log.Error("failed to look up token", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if user.IsVerified {
		return AlreadyVerified, nil
	}

	user.IsVerified = true

	if err := a.usrSaver.SaveUser(ctx, user); err != nil {
		log.Error("failed to persist verification", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email verified", slog.String("email", user.Email))

	return VerifiedNow, nil
}

// User looks up a credential record by email for resend and profile reads.
func (a *Auth) User(ctx context.Context, email string) (models.User, error) {
	const op = "auth.User"

	user, err := a.usrProvider.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, storage.ErrUserNotFound
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
