package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tutorly_auth/internal/config"
	"tutorly_auth/internal/models"
	"tutorly_auth/internal/storage"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	const op = "storage.postgres.New"

	poolConfig, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse config: %w", op, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create pool: %w", op, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	return &Storage{pool: pool}, nil
}

// CreateUser relies on the unique index on email: a concurrent duplicate
// insert surfaces as a 23505 and maps to storage.ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.postgres.CreateUser"

	query := `
		INSERT INTO users (name, email, password, token, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW());
	`

	_, err := s.pool.Exec(ctx, query, user.Name, user.Email, user.Password, user.Token, user.IsVerified)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return storage.ErrUserExists
		}

		return fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT name, email, password, token, is_verified, created_at
		FROM users
		WHERE email = $1;
	`

	return s.scanUser(s.pool.QueryRow(ctx, query, email))
}

// UserByToken is the verification-link lookup; the token column is indexed.
func (s *Storage) UserByToken(ctx context.Context, token string) (models.User, error) {
	query := `
		SELECT name, email, password, token, is_verified, created_at
		FROM users
		WHERE token = $1;
	`

	return s.scanUser(s.pool.QueryRow(ctx, query, token))
}

func (s *Storage) SaveUser(ctx context.Context, user models.User) error {
	const op = "storage.postgres.SaveUser"

	query := `
		UPDATE users
		SET token = $1, is_verified = $2
		WHERE email = $3;
	`

	_, err := s.pool.Exec(ctx, query, user.Token, user.IsVerified, user.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteUser(ctx context.Context, email string) error {
	const op = "storage.postgres.DeleteUser"

	query := `DELETE FROM users WHERE email = $1`

	_, err := s.pool.Exec(ctx, query, email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) scanUser(row pgx.Row) (models.User, error) {
	var u models.User

	err := row.Scan(
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Token,
		&u.IsVerified,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrUserNotFound
		}

		return models.User{}, err
	}

	return u, nil
}

func dsn(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)
}
