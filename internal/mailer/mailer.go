package mailer

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/healio-platform/healio-api/internal/config"
)

var ErrNotConfigured = errors.New("smtp not configured")

// Mailer sends transactional mail. Delivery is always best-effort for the
// callers: a failed send must never roll back the action that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	host string
	port int
	from string
	auth smtp.Auth
}

func New(cfg *config.Config) *SMTPMailer {
	m := &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.SMTPFrom,
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return m
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" {
		return ErrNotConfigured
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.from, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return smtp.SendMail(addr, m.auth, m.from, []string{to}, msg)
}
