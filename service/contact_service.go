package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// ContactService handles contact form messages
type ContactService struct {
	deps Collaborators
}

// Ensure ContactService implements ContactServiceInterface
var _ ContactServiceInterface = (*ContactService)(nil)

// NewContactService creates a new ContactService
func NewContactService(deps Collaborators) *ContactService {
	return &ContactService{deps: deps}
}

// Submit hands the operator email, the spreadsheet row and the database record to the dispatcher
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	reference := uuid.NewString()
	submittedAt := s.deps.now()

	log.Printf("✅ Contact: Message %s accepted from %s", reference, req.Email)

	if s.deps.Dispatcher == nil {
		return nil
	}

	if s.deps.emailEnabled() {
		msg := s.operatorEmail(req)
		s.deps.Dispatcher.Go("contact-email:"+reference, func(ctx context.Context) error {
			return s.deps.Email.Send(ctx, msg)
		})
	}

	if s.deps.Sheet != nil {
		row := []any{
			submittedAt.UTC().Format(timestampLayout),
			models.RecordKindContact,
			req.Name,
			req.Email,
			req.Phone,
			req.Postcode,
			req.Message,
		}
		s.deps.Dispatcher.Go("contact-sheet:"+reference, func(ctx context.Context) error {
			return s.deps.Sheet.AppendRow(ctx, row)
		})
	}

	if s.deps.Records != nil {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to encode contact payload: %w", err)
		}
		record := &models.QuoteRecord{
			Reference: reference,
			Kind:      models.RecordKindContact,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Postcode:  req.Postcode,
			Payload:   string(payload),
		}
		s.deps.Dispatcher.Go("contact-record:"+reference, func(ctx context.Context) error {
			return s.deps.Records.Insert(ctx, record)
		})
	}

	return nil
}

func (s *ContactService) operatorEmail(req *models.ContactRequest) *models.EmailMessage {
	postcode := req.Postcode
	if postcode == "" {
		postcode = "Not provided"
	}
	message := req.Message
	if message == "" {
		message = "No message"
	}

	return &models.EmailMessage{
		From:    s.deps.FromEmail,
		To:      []string{s.deps.AdminEmail},
		Subject: "Contact Form: " + req.Name,
		Text: fmt.Sprintf("New contact form submission:\n\nName: %s\nPhone: %s\nEmail: %s\nPostcode: %s\n\nMessage:\n%s",
			req.Name, req.Phone, req.Email, postcode, message),
	}
}
