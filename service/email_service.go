package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// EmailService sends plain-text emails through Resend
type EmailService struct {
	client *resend.Client
}

// Ensure EmailService implements EmailServiceInterface
var _ EmailServiceInterface = (*EmailService)(nil)

// NewEmailService creates a new EmailService
func NewEmailService(apiKey string, httpClient *http.Client) *EmailService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EmailService{client: resend.NewCustomClient(httpClient, apiKey)}
}

// WithEndpoint points the client at another Resend-compatible base URL
func (s *EmailService) WithEndpoint(endpoint string) *EmailService {
	base, err := url.Parse(strings.TrimSuffix(endpoint, "/") + "/")
	if err != nil {
		log.Printf("⚠️  Email: Ignoring invalid endpoint %q: %v", endpoint, err)
		return s
	}
	s.client.BaseURL = base
	return s
}

// Send delivers one message
func (s *EmailService) Send(ctx context.Context, msg *models.EmailMessage) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 Email: Sent %q to %v (id=%s)", msg.Subject, msg.To, sent.Id)
	return nil
}
