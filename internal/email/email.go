package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"juaconnect_backend/internal/config"
	"juaconnect_backend/internal/logger"
)

// Provider sends transactional mail. Callers treat delivery as best effort;
// the signup flow never fails because SMTP is down.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

type SMTPProvider struct {
	cfg *config.Config
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.cfg.Email.FromEmail, p.cfg.Email.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// NoopProvider logs instead of sending. Used when SMTP is not configured
// and in tests.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(to, subject, htmlBody string) error {
	logger.Debug("email delivery skipped, SMTP not configured", "to", to, "subject", subject)
	return nil
}

// NewProviderFromConfig picks SMTP when a host is configured and the noop
// provider otherwise.
func NewProviderFromConfig(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return NewNoopProvider()
	}
	return NewSMTPProvider(cfg)
}

// WelcomeBody renders the signup greeting.
func WelcomeBody(username, role string) string {
	intro := "You can now post service requests and book trusted artisans near you."
	if role == "artisan" {
		intro = "Your artisan profile is live. Clients in your area can now find and book you."
	}
	return fmt.Sprintf(
		"<h2>Welcome to JuaConnect, %s!</h2><p>%s</p>",
		username, intro,
	)
}
