package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Soborbo/bristolhouseclearances/dispatch"
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/repository"
	"github.com/Soborbo/bristolhouseclearances/sheets"
	"github.com/Soborbo/bristolhouseclearances/utils"
)

const (
	companyName  = "Bristol House Clearances"
	companyPhone = "0117 123 4567"

	// timestampLayout matches the millisecond UTC form used in the spreadsheet log
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Collaborators bundles the optional side-channel services shared by the quote and contact pipelines.
// A nil collaborator means that step is not configured and is skipped.
type Collaborators struct {
	Verifier   VerificationServiceInterface
	Email      EmailServiceInterface
	Sheet      sheets.Appender
	Records    repository.QuoteRepositoryInterface
	Dispatcher dispatch.Runner

	AdminEmail string
	FromEmail  string
	Now        func() time.Time
}

func (c *Collaborators) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Collaborators) emailEnabled() bool {
	return c.Email != nil && c.AdminEmail != "" && c.FromEmail != ""
}

// QuoteService runs the authoritative submission pipeline
type QuoteService struct {
	engine *pricing.Engine
	deps   Collaborators
}

// Ensure QuoteService implements QuoteServiceInterface
var _ QuoteServiceInterface = (*QuoteService)(nil)

// NewQuoteService creates a new QuoteService
func NewQuoteService(engine *pricing.Engine, deps Collaborators) *QuoteService {
	if engine == nil {
		engine = pricing.Default()
	}
	return &QuoteService{engine: engine, deps: deps}
}

// Submit verifies the submitter, re-prices the quote and hands notifications, the spreadsheet row
// and the database record to the dispatcher. The response never waits on those side effects.
func (s *QuoteService) Submit(ctx context.Context, submission *models.QuoteSubmission, remoteIP string) (*models.PriceResult, error) {
	if s.deps.Verifier != nil {
		ok, err := s.deps.Verifier.Verify(ctx, submission.TurnstileToken, remoteIP)
		if err != nil {
			return nil, fmt.Errorf("failed to verify submission: %w", err)
		}
		if !ok {
			return nil, ErrVerificationFailed
		}
	}

	price := s.engine.Compute(submission.Items, submission.AccessIssues, submission.Distance.EffectiveMiles())
	reference := uuid.NewString()
	submittedAt := s.deps.now()

	log.Printf("✅ Submit: Quote %s priced at %s for %s", reference, utils.FormatGBP(price.Total), submission.Address.Postcode)

	if s.deps.Dispatcher == nil {
		return &price, nil
	}

	if s.deps.emailEnabled() {
		adminMsg := s.operatorEmail(submission, price)
		customerMsg := s.customerEmail(submission, price)
		s.deps.Dispatcher.Go("quote-email:"+reference, func(ctx context.Context) error {
			return multierr.Combine(
				s.deps.Email.Send(ctx, adminMsg),
				s.deps.Email.Send(ctx, customerMsg),
			)
		})
	}

	if s.deps.Sheet != nil {
		row, err := quoteSheetRow(submission, price, submittedAt)
		if err != nil {
			log.Printf("⚠️  Submit: Skipping spreadsheet row for %s: %v", reference, err)
		} else {
			s.deps.Dispatcher.Go("quote-sheet:"+reference, func(ctx context.Context) error {
				return s.deps.Sheet.AppendRow(ctx, row)
			})
		}
	}

	if s.deps.Records != nil {
		record, err := quoteRecord(reference, submission, price)
		if err != nil {
			log.Printf("⚠️  Submit: Skipping database record for %s: %v", reference, err)
		} else {
			s.deps.Dispatcher.Go("quote-record:"+reference, func(ctx context.Context) error {
				return s.deps.Records.Insert(ctx, record)
			})
		}
	}

	return &price, nil
}

func (s *QuoteService) operatorEmail(sub *models.QuoteSubmission, price models.PriceResult) *models.EmailMessage {
	var items strings.Builder
	for _, item := range models.ClearanceItems {
		if qty := sub.Items[item.Code]; qty > 0 {
			fmt.Fprintf(&items, "  %s: %d\n", item.Label, qty)
		}
	}

	issues := strings.Join(sub.AccessIssues, ", ")
	if issues == "" {
		issues = "None"
	}
	notes := sub.Contact.Notes
	if notes == "" {
		notes = "None"
	}

	var text strings.Builder
	text.WriteString("New quote request:\n\n")
	fmt.Fprintf(&text, "Name: %s\nEmail: %s\nPhone: %s\n\n", sub.Contact.FullName(), sub.Contact.Email, sub.Contact.Phone)
	fmt.Fprintf(&text, "Address:\n%s\n%s\n%s\n\n", sub.Address.Line1, sub.Address.City, sub.Address.Postcode)
	fmt.Fprintf(&text, "Distance: %v miles\n\n", sub.Distance.Miles)
	fmt.Fprintf(&text, "Items:\n%s\n", items.String())
	fmt.Fprintf(&text, "Access issues: %s\nNotes: %s\n\n", issues, notes)
	fmt.Fprintf(&text, "Estimated price: %s", utils.FormatGBP(price.Total))

	return &models.EmailMessage{
		From:    s.deps.FromEmail,
		To:      []string{s.deps.AdminEmail},
		Subject: fmt.Sprintf("New Quote Request: %s - %s", sub.Contact.FullName(), utils.FormatGBP(price.Total)),
		Text:    text.String(),
	}
}

func (s *QuoteService) customerEmail(sub *models.QuoteSubmission, price models.PriceResult) *models.EmailMessage {
	text := fmt.Sprintf("Dear %s,\n\n"+
		"Thank you for your quote request. Your estimated price is %s.\n\n"+
		"We'll review your details and send you a firm, locked-in quote within 2 hours.\n\n"+
		"Want it faster? Send us photos via WhatsApp or call us on %s.\n\n"+
		"Best regards,\n%s",
		sub.Contact.FirstName, utils.FormatGBP(price.Total), companyPhone, companyName)

	return &models.EmailMessage{
		From:    s.deps.FromEmail,
		To:      []string{sub.Contact.Email},
		Subject: "Your " + companyName + " Quote Request",
		Text:    text,
	}
}

// quoteSheetRow lays out
// [timestamp, name, email, phone, "line1, postcode", miles, items JSON, access issues, total, notes]
func quoteSheetRow(sub *models.QuoteSubmission, price models.PriceResult, at time.Time) ([]any, error) {
	items, err := json.Marshal(sub.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	return []any{
		at.UTC().Format(timestampLayout),
		sub.Contact.FullName(),
		sub.Contact.Email,
		sub.Contact.Phone,
		sub.Address.Line1 + ", " + sub.Address.Postcode,
		sub.Distance.Miles,
		string(items),
		strings.Join(sub.AccessIssues, ", "),
		price.Total,
		sub.Contact.Notes,
	}, nil
}

func quoteRecord(reference string, sub *models.QuoteSubmission, price models.PriceResult) (*models.QuoteRecord, error) {
	payload, err := json.Marshal(struct {
		Items        map[string]int      `json:"items"`
		AccessIssues []string            `json:"accessIssues"`
		Address      models.Address      `json:"address"`
		Contact      models.Contact      `json:"contact"`
		Distance     models.DistanceInfo `json:"distance"`
		Price        models.PriceResult  `json:"price"`
	}{sub.Items, sub.AccessIssues, sub.Address, sub.Contact, sub.Distance, price})
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote payload: %w", err)
	}

	return &models.QuoteRecord{
		Reference: reference,
		Kind:      models.RecordKindQuote,
		Name:      sub.Contact.FullName(),
		Email:     sub.Contact.Email,
		Phone:     sub.Contact.Phone,
		Postcode:  sub.Address.Postcode,
		Payload:   string(payload),
		Total:     price.Total,
	}, nil
}
