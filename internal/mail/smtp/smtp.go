package smtp

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"tutorly_auth/internal/models"
)

type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

const bodyTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to TutorlyAI!</h2>
  <p>Hi %s,</p>
  <p>Thank you for registering with Tutorly. To complete your registration, please verify your email address:</p>
  <p><a href="%s">Verify Email Address</a></p>
  <p>This verification link will expire in 3 hours.</p>
  <p>If you did not sign up for a Tutorly account, please ignore this email.</p>
  <p>Thanks,<br>The Tutorly Team</p>
</div>`

// SendMessage delivers the verification mail synchronously over SMTP.
func (m *Mailer) SendMessage(_ context.Context, emailMsg models.EmailMessage) error {
	const op = "mail.smtp.SendMessage"

	msg := gomail.NewMessage()
	msg.SetHeader("To", emailMsg.Email)
	msg.SetHeader("From", m.From)
	msg.SetHeader("Subject", "Verify Your Email - TutorlyAI")
	msg.SetBody("text/html", fmt.Sprintf(bodyTemplate, emailMsg.Name, emailMsg.Link))

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)

	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
