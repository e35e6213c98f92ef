package memory

import (
	"context"
	"sync"
	"time"

	"tutorly_auth/internal/models"
	"tutorly_auth/internal/storage"
)

// Storage is the volatile credential backend: a mutex-guarded map keyed by
// email. It holds records only for the lifetime of the process and relies on
// the eviction sweep to shed entries whose session token has expired.
type Storage struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func New() *Storage {
	return &Storage{
		users: make(map[string]models.User),
	}
}

// CreateUser is an atomic check-then-insert: under concurrent registration
// for the same email at most one caller wins, the rest get ErrUserExists.
func (s *Storage) CreateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return storage.ErrUserExists
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	s.users[user.Email] = user

	return nil
}

func (s *Storage) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return user, nil
}

// UserByToken scans linearly; the volatile backend has no token index.
func (s *Storage) UserByToken(_ context.Context, token string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Token == token {
			return user, nil
		}
	}

	return models.User{}, storage.ErrUserNotFound
}

func (s *Storage) SaveUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Email] = user

	return nil
}

func (s *Storage) DeleteUser(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, email)

	return nil
}

// Evict removes every record for which expired returns true and reports the
// emails removed. Used only by the periodic eviction sweep.
func (s *Storage) Evict(expired func(user models.User) bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string

	for email, user := range s.users {
		if expired(user) {
			delete(s.users, email)
			removed = append(removed, email)
		}
	}

	return removed
}
