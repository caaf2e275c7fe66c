package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

const gatewayTimeout = 30 * time.Second

// SMTPMailer delivers notifications over SMTP with STARTTLS.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(_ context.Context, n Notification) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.Recipient)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
