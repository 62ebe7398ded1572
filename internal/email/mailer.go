package email

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Mailer sends transactional mail. Every method returns the message id of the
// sent mail, or an error the caller is expected to log rather than propagate.
type Mailer interface {
	SendConfirmation(ctx context.Context, data OrderEmailData) (string, error)
	SendAdminAlert(ctx context.Context, data OrderEmailData) (string, error)
	SendStatusUpdate(ctx context.Context, data OrderEmailData, status string) (string, error)
}

// Config for the SMTP transport. Port 465 uses implicit TLS, matching the
// hosting provider's submission endpoint.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	AdminEmail string
	LogoURL    string
	Timeout    time.Duration
}

type SMTPMailer struct {
	cfg    Config
	client *mail.Client
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.FromName == "" {
		cfg.FromName = "LaunchMyBiz"
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}

	return &SMTPMailer{cfg: cfg, client: client}, nil
}

func (s *SMTPMailer) SendConfirmation(ctx context.Context, data OrderEmailData) (string, error) {
	html, err := render("confirmation", s.cfg.LogoURL, data, "")
	if err != nil {
		return "", err
	}
	return s.send(ctx, data.Contact.ContactEmail,
		"Your LLC Formation Order Confirmation - LaunchMyBiz", html)
}

func (s *SMTPMailer) SendAdminAlert(ctx context.Context, data OrderEmailData) (string, error) {
	html, err := render("adminAlert", s.cfg.LogoURL, data, "")
	if err != nil {
		return "", err
	}
	subject := fmt.Sprintf("New LLC Formation Order: %s", data.CompanyInfo.CompanyDesiredName)
	return s.send(ctx, s.cfg.AdminEmail, subject, html)
}

func (s *SMTPMailer) SendStatusUpdate(ctx context.Context, data OrderEmailData, status string) (string, error) {
	subject, message := statusLine(status)
	html, err := render("statusUpdate", s.cfg.LogoURL, data, message)
	if err != nil {
		return "", err
	}
	return s.send(ctx, data.Contact.ContactEmail, subject, html)
}

func (s *SMTPMailer) send(ctx context.Context, to, subject, html string) (string, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.Username); err != nil {
		return "", fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return "", fmt.Errorf("invalid recipient address %q: %w", to, err)
	}

	messageID := uuid.NewString()
	msg.SetMessageIDWithValue(messageID)
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, html)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return messageID, nil
}
