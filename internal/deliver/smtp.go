package deliver

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/jonathan/outreach-pipeline/internal/types"
)

// SMTPConfig holds the outbound mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// SMTPConfigFromEnv reads relay settings from the environment. Defaults
// target a local MailHog instance, which accepts unauthenticated mail.
func SMTPConfigFromEnv() SMTPConfig {
	return SMTPConfig{
		Host:     envOr("SMTP_HOST", "localhost"),
		Port:     envOr("SMTP_PORT", "1025"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOr("SMTP_FROM", "outreach@example.com"),
	}
}

// SMTPSender delivers email messages through an SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
	// send is smtp.SendMail unless overridden in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an email sender for the given relay.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}
}

// Send delivers one drafted email to the lead's address.
func (s *SMTPSender) Send(ctx context.Context, lead types.Lead, msg types.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Channel != types.ChannelEmail {
		return &SendError{LeadID: lead.ID, Channel: msg.Channel, Message: "smtp sender only handles email"}
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	payload := buildMIME(s.cfg.From, lead.Email, msg.Subject, msg.Body)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := s.send(addr, auth, s.cfg.From, []string{lead.Email}, payload); err != nil {
		return &SendError{LeadID: lead.ID, Channel: types.ChannelEmail, Message: "smtp relay rejected the message", Cause: err}
	}
	return nil
}

func buildMIME(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
