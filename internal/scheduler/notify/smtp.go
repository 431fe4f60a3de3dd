package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPNotifier delivers notifications as plain-text email over SMTP.
type SMTPNotifier struct {
	// Addr is the SMTP server address in host:port form.
	Addr string

	// From is the sender address placed in the envelope and headers.
	From string

	// Auth is optional; nil sends without authentication, which is common
	// for local relays.
	Auth smtp.Auth

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates an email delivery backend.
func NewSMTPNotifier(addr, from string, auth smtp.Auth) *SMTPNotifier {
	return &SMTPNotifier{
		Addr: addr,
		From: from,
		Auth: auth,
		send: smtp.SendMail,
	}
}

// Send delivers one message. smtp.SendMail has no context support, so the
// call runs in a goroutine and the result is raced against ctx.
func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	msg := n.buildMessage(recipient, subject, body)

	errCh := make(chan error, 1)
	go func() {
		errCh <- n.send(n.Addr, n.Auth, n.From, []string{recipient}, msg)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", recipient, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *SMTPNotifier) buildMessage(recipient, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// sanitizeHeader strips CR and LF to prevent header injection through
// meeting titles.
func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
