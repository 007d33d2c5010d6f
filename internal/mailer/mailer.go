package mailer

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML message. The deletion flow treats a delivery
// failure as fatal for the request: no email, no valid code.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTP is the production Mailer.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	if from == "" {
		from = username
	}
	return &SMTP{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *SMTP) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// DeletionCodeBody builds the one-time-code email for a pending will
// deletion.
func DeletionCodeBody(recipientName, willTitle, code string, expiresAt time.Time) string {
	if recipientName == "" {
		recipientName = "User"
	}
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #dc2626;">Will Deletion Request</h2>
  <p>Hello %s,</p>
  <p>You have requested to delete the following will:</p>
  <div style="background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <strong>%s</strong>
  </div>
  <p>To confirm this deletion, please use the following verification code:</p>
  <div style="background: #dc2626; color: white; padding: 20px; text-align: center; border-radius: 8px; margin: 20px 0;">
    <h1 style="margin: 0; font-size: 32px; letter-spacing: 4px;">%s</h1>
  </div>
  <p><strong>Important:</strong></p>
  <ul>
    <li>This code will expire at %s (in 10 minutes)</li>
    <li>Once deleted, the will cannot be recovered</li>
    <li>If you didn't request this deletion, please ignore this email</li>
  </ul>
  <hr style="margin: 30px 0;">
  <p style="color: #6b7280; font-size: 14px;">This is an automated message. Please do not reply to this email.</p>
</div>`, recipientName, willTitle, code, expiresAt.UTC().Format("15:04 MST"))
}
