package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	mail "github.com/go-mail/mail"
)

// SMTPSender is the reference [EmailSender]: a plain SMTP submission client.
type SMTPSender struct {
	Host string
	Port int
	From string
	User string
	Pass string

	// TLSMode is "auto" (STARTTLS when offered), "ssl", or "none".
	TLSMode string
	// InsecureSkipVerify disables certificate verification. Dev only.
	InsecureSkipVerify bool
}

// NewSMTPSender returns an SMTPSender with TLSMode "auto".
func NewSMTPSender(host string, port int, from, user, pass string) *SMTPSender {
	return &SMTPSender{
		Host:    host,
		Port:    port,
		From:    from,
		User:    user,
		Pass:    pass,
		TLSMode: "auto",
	}
}

// SendEmail submits one message. The context deadline is honored as the dial
// timeout; go-mail performs the dial and send as one blocking call.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)

	if textBody != "" {
		m.SetBody("text/plain", textBody)
		if htmlBody != "" {
			m.AddAlternative("text/html", htmlBody)
		}
	} else if htmlBody != "" {
		m.SetBody("text/html", htmlBody)
	}

	d := mail.NewDialer(s.Host, s.Port, s.User, s.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         s.Host,
		InsecureSkipVerify: s.InsecureSkipVerify,
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			d.Timeout = remaining
		}
	}

	switch s.TLSMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.TLSConfig = &tls.Config{InsecureSkipVerify: s.InsecureSkipVerify}
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
