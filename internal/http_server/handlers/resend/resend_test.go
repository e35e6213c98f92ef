package resend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorly_auth/internal/auth"
	"tutorly_auth/internal/models"
	"tutorly_auth/internal/storage/memory"
)

type fakeSender struct {
	sent []models.EmailMessage
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, msg models.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newHandler(t *testing.T, sender *fakeSender) (http.HandlerFunc, *auth.Auth) {
	t.Helper()

	store := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.New(log, store, store, "test-secret", 3*time.Hour)

	return New(log, validator.New(), authService, sender, "http://localhost:3000"), authService
}

func doRequest(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/resend-email", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestResend_Success(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	handler, authService := newHandler(t, sender)

	user, err := authService.Register(context.Background(), "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	rec := doRequest(handler, `{"email":"ada@x.com","token":"`+user.Token+`"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Verification email resent successfully"}`, rec.Body.String())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@x.com", sender.sent[0].Email)
	assert.Equal(t, "Ada", sender.sent[0].Name)
	assert.Contains(t, sender.sent[0].Link, user.Token)
}

func TestResend_ForwardsClientToken(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	handler, authService := newHandler(t, sender)

	_, err := authService.Register(context.Background(), "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	// The supplied token is dispatched as-is, not re-read from the record.
	rec := doRequest(handler, `{"email":"ada@x.com","token":"client-supplied"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Link, "client-supplied")
}

func TestResend_UnknownUser(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	handler, _ := newHandler(t, sender)

	rec := doRequest(handler, `{"email":"nobody@x.com","token":"tok"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
	assert.Empty(t, sender.sent)
}

func TestResend_MissingFields(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	handler, _ := newHandler(t, sender)

	rec := doRequest(handler, `{"email":"ada@x.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sender.sent)
}

func TestResend_DeliveryFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{err: errors.New("queue unavailable")}
	handler, authService := newHandler(t, sender)

	user, err := authService.Register(context.Background(), "Ada", "ada@x.com", "pw1")
	require.NoError(t, err)

	rec := doRequest(handler, `{"email":"ada@x.com","token":"`+user.Token+`"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
