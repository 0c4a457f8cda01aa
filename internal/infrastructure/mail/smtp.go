package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/craftbase/auth-api/internal/core/ports"
)

// subjects maps template identifiers to mail subjects. Template rendering
// itself is out of scope; the sender emits a plain-text body from the
// variables.
var subjects = map[string]string{
	"password-reset": "Reset your password",
}

// SMTPMailer delivers notification mail over plain SMTP.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a sender for host:port. Auth is only applied when a
// username is configured, so a local relay works without credentials.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) Send(_ context.Context, msg ports.Mail) error {
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.Recipient}, m.message(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) message(msg ports.Mail) []byte {
	subject, ok := subjects[msg.TemplateID]
	if !ok {
		subject = msg.TemplateID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	if link, ok := msg.Variables["resetLink"]; ok {
		if name := msg.Variables["firstName"]; name != "" {
			fmt.Fprintf(&b, "Hi %s,\r\n\r\n", name)
		}
		fmt.Fprintf(&b, "Use the link below to choose a new password:\r\n%s\r\n", link)
	} else {
		for k, v := range msg.Variables {
			fmt.Fprintf(&b, "%s: %s\r\n", k, v)
		}
	}
	return []byte(b.String())
}
