package storage

import (
	"context"
	"errors"

	"tutorly_auth/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserStore is implemented by every credential backend. The active backend is
// chosen once at startup; callers never branch on which one they hold.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByToken(ctx context.Context, token string) (models.User, error)
	SaveUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, email string) error
}
