package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorly_auth/internal/models"
	"tutorly_auth/internal/storage"
)

func TestCreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	err := s.CreateUser(ctx, models.User{Email: "ada@x.com", Name: "Ada"})
	require.NoError(t, err)

	err = s.CreateUser(ctx, models.User{Email: "ada@x.com", Name: "Other"})
	assert.ErrorIs(t, err, storage.ErrUserExists)
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	const attempts = 50

	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateUser(ctx, models.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	var created, rejected int
	for err := range errs {
		if err == nil {
			created++
		} else {
			require.ErrorIs(t, err, storage.ErrUserExists)
			rejected++
		}
	}

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, rejected)
}

func TestUserByToken(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, models.User{Email: "a@x.com", Token: "tok-a"}))
	require.NoError(t, s.CreateUser(ctx, models.User{Email: "b@x.com", Token: "tok-b"}))

	user, err := s.UserByToken(ctx, "tok-b")
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", user.Email)

	_, err = s.UserByToken(ctx, "tok-missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestSaveUser_OverwritesFields(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, models.User{Email: "a@x.com", Token: "old"}))

	user, err := s.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	user.Token = "new"
	user.IsVerified = true
	require.NoError(t, s.SaveUser(ctx, user))

	got, err := s.UserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Token)
	assert.True(t, got.IsVerified)
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, models.User{Email: "a@x.com"}))
	require.NoError(t, s.DeleteUser(ctx, "a@x.com"))

	_, err := s.UserByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	// Deleting an absent record is a no-op.
	assert.NoError(t, s.DeleteUser(ctx, "a@x.com"))
}

func TestEvict(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	old := time.Now().Add(-4 * time.Hour)
	require.NoError(t, s.CreateUser(ctx, models.User{Email: "stale@x.com", CreatedAt: old}))
	require.NoError(t, s.CreateUser(ctx, models.User{Email: "fresh@x.com"}))

	removed := s.Evict(func(u models.User) bool {
		return u.CreatedAt.Before(time.Now().Add(-3 * time.Hour))
	})

	assert.Equal(t, []string{"stale@x.com"}, removed)

	_, err := s.UserByEmail(ctx, "stale@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	_, err = s.UserByEmail(ctx, "fresh@x.com")
	assert.NoError(t, err)
}
