package verification

import (
	"context"
	"fmt"
	"log/slog"

	"tutorly_auth/internal/models"
)

// Publisher is any mail transport: the direct SMTP mailer or the AMQP
// publisher feeding the out-of-process mail worker.
type Publisher interface {
	SendMessage(ctx context.Context, msg models.EmailMessage) error
}

// SendVerificationEmail builds the verification link for token and dispatches
// it to the user's address. A transport failure is returned to the caller;
// registration and resend both surface it rather than swallow it.
func SendVerificationEmail(
	ctx context.Context,
	log *slog.Logger,
	pub Publisher,
	frontendURL, email, name, token string,
) error {
	const op = "verification.SendVerificationEmail"

	verifyLink := fmt.Sprintf("%s/tutorly/verify-email?token=%s", frontendURL, token)

	msg := models.EmailMessage{
		Email: email,
		Name:  name,
		Link:  verifyLink,
	}

	if err := pub.SendMessage(ctx, msg); err != nil {
		log.Error("failed to send verification link", slog.Any("err", err))

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
