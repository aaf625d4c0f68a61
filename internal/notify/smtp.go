package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig carries the mail relay settings.
type SMTPConfig struct {
	Host string
	Port int
	// Username and Password are optional; empty means no AUTH.
	Username string
	Password string
	From     string
	// SubjectPrefix is prepended to every subject, e.g. "[EasyMarket] ".
	SubjectPrefix string
}

// SMTPSink delivers notifications as HTML mail over a plain SMTP relay.
// There is no mail library in use here on purpose: the message is a single
// HTML part and net/smtp covers that without another dependency.
type SMTPSink struct {
	cfg SMTPConfig
}

func NewSMTPSink(cfg SMTPConfig) *SMTPSink {
	return &SMTPSink{cfg: cfg}
}

func (s *SMTPSink) Send(_ context.Context, subject, recipient, bodyHTML string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := s.message(subject, recipient, bodyHTML)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{recipient}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", recipient, err)
	}
	return nil
}

func (s *SMTPSink) message(subject, recipient, bodyHTML string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", recipient)
	fmt.Fprintf(&b, "Subject: %s%s\r\n", s.cfg.SubjectPrefix, subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(bodyHTML)
	b.WriteString("\r\n")
	return []byte(b.String())
}
