package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/constants"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/utils"
)

// NotificationSender delivers transactional email. Callers treat delivery
// failures as non-fatal.
type NotificationSender interface {
	SendPasswordResetCode(ctx context.Context, toEmail, toName, code string, ttl time.Duration) error
	SendNewsletterWelcome(ctx context.Context, toEmail, verifyURL string) error
}

const sendGridMailPath = "/v3/mail/send"

// SendGridSender sends email through the SendGrid v3 API.
type SendGridSender struct {
	apiKey      string
	fromAddress string
	fromName    string

	// apiHost overrides the SendGrid API host. Empty means the public API.
	apiHost string
}

// NewSendGridSender creates a SendGridSender from the email settings.
func NewSendGridSender(cfg *config.EmailSettings) (*SendGridSender, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY not set")
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = constants.DefaultEmailFromName
	}
	return &SendGridSender{
		apiKey:      cfg.SendGridAPIKey,
		fromAddress: cfg.FromAddress,
		fromName:    fromName,
	}, nil
}

// NewNotificationSender returns a SendGridSender when an API key is
// configured and a LogSender otherwise.
func NewNotificationSender(cfg *config.EmailSettings) NotificationSender {
	sender, err := NewSendGridSender(cfg)
	if err != nil {
		log.Warn().Msg("SendGrid not configured, notifications will only be logged")
		return LogSender{}
	}
	return sender
}

// SendPasswordResetCode emails a password reset code.
func (s *SendGridSender) SendPasswordResetCode(ctx context.Context, toEmail, toName, code string, ttl time.Duration) error {
	minutes := int(ttl.Minutes())
	subject := "Password Reset Code"
	plainTextContent := fmt.Sprintf(
		"Hello %s,\n\nUse the verification code %s to reset your password. The code expires in %d minutes.\n\nIf you didn't request this, you can ignore this email.",
		toName, code, minutes)
	htmlContent := fmt.Sprintf(
		"<p>Hello <strong>%s</strong>,</p><p>Use the verification code below to reset your password:</p>"+
			"<p style=\"font-size:32px;letter-spacing:8px;font-family:monospace\"><strong>%s</strong></p>"+
			"<p>This code expires in <strong>%d minutes</strong>.</p>"+
			"<p>If you didn't request this, you can ignore this email.</p>",
		html.EscapeString(toName), code, minutes)

	return s.send(ctx, toEmail, toName, subject, plainTextContent, htmlContent)
}

// SendNewsletterWelcome emails a newsletter welcome, with a verification
// link when verifyURL is set.
func (s *SendGridSender) SendNewsletterWelcome(ctx context.Context, toEmail, verifyURL string) error {
	subject := "Welcome to the BlogSpace Newsletter!"
	plainTextContent := "Thank you for subscribing to the BlogSpace newsletter."
	htmlContent := "<h1>Welcome to BlogSpace!</h1><p>Thank you for subscribing to our newsletter.</p>"
	if verifyURL != "" {
		plainTextContent += fmt.Sprintf("\n\nPlease verify your email address: %s", verifyURL)
		htmlContent += fmt.Sprintf("<p><strong>Please verify your email to complete your subscription:</strong> <a href=\"%s\">Verify Email Address</a></p>",
			html.EscapeString(verifyURL))
	}

	return s.send(ctx, toEmail, "", subject, plainTextContent, htmlContent)
}

func (s *SendGridSender) send(ctx context.Context, toEmail, toName, subject, plainTextContent, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	// The client keeps the request body on itself, so it is not shared between sends.
	client := sendgrid.NewSendClient(s.apiKey)
	if s.apiHost != "" {
		client.BaseURL = s.apiHost + sendGridMailPath
	}

	ctx, cancel := context.WithTimeout(ctx, constants.NotificationTimeout)
	defer cancel()

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", utils.MaskEmail(toEmail)).Msg("Failed to send email")
		return err
	}
	if response.StatusCode >= 300 {
		log.Error().
			Int("status_code", response.StatusCode).
			Str("to", utils.MaskEmail(toEmail)).
			Msg("SendGrid rejected email")
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Info().
		Int("status_code", response.StatusCode).
		Str("to", utils.MaskEmail(toEmail)).
		Str("subject", subject).
		Msg("Email sent")
	return nil
}

// LogSender records notifications in the log instead of sending them. The
// reset code itself is never written.
type LogSender struct{}

// SendPasswordResetCode logs that a reset code would have been sent.
func (LogSender) SendPasswordResetCode(_ context.Context, toEmail, _, _ string, ttl time.Duration) error {
	log.Info().
		Str("to", utils.MaskEmail(toEmail)).
		Dur("ttl", ttl).
		Msg("Password reset email not sent, no email provider configured")
	return nil
}

// SendNewsletterWelcome logs that a welcome email would have been sent.
func (LogSender) SendNewsletterWelcome(_ context.Context, toEmail, _ string) error {
	log.Info().
		Str("to", utils.MaskEmail(toEmail)).
		Msg("Newsletter welcome email not sent, no email provider configured")
	return nil
}

var (
	_ NotificationSender = (*SendGridSender)(nil)
	_ NotificationSender = LogSender{}
)
