package wizard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/Soborbo/bristolhouseclearances/client"
	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// User-facing submission failure messages
const (
	MessageServerFailure  = "Something went wrong. Please try again or call us directly."
	MessageNetworkFailure = "Network error. Please check your connection and try again."
)

var (
	// ErrSubmissionInFlight is returned when a submission is already running
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrAlreadySubmitted is returned when the quote was already accepted; Reset starts a new one
	ErrAlreadySubmitted = errors.New("quote already submitted")
)

// LocalValidationError lists the contact fields that failed the local checks
type LocalValidationError struct {
	Fields map[string]string
}

func (e *LocalValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// QuoteSubmitter sends a submission to the server and returns the server's price
type QuoteSubmitter interface {
	SubmitQuote(ctx context.Context, submission *models.QuoteSubmission) (*models.PriceResult, error)
}

// Ensure client.QuoteAPI implements QuoteSubmitter
var _ QuoteSubmitter = (*client.QuoteAPI)(nil)

// SubmitResult carries the local estimate shown while waiting and the final price
type SubmitResult struct {
	Estimate models.PriceResult
	Price    models.PriceResult
}

// Submitter runs the client side of a quote submission against a Machine
type Submitter struct {
	machine  *Machine
	api      QuoteSubmitter
	engine   *pricing.Engine
	inFlight atomic.Bool
}

// NewSubmitter creates a new Submitter
func NewSubmitter(machine *Machine, api QuoteSubmitter) *Submitter {
	return &Submitter{
		machine: machine,
		api:     api,
		engine:  pricing.Default(),
	}
}

// Submit validates the contact step locally, then sends the quote. Only one call
// runs at a time; a concurrent call gets ErrSubmissionInFlight without touching the network.
// Failures are also recorded in the wizard state as a user-facing message.
func (s *Submitter) Submit(ctx context.Context) (*SubmitResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	state := s.machine.State()
	if state.Submitting() {
		return nil, ErrSubmissionInFlight
	}
	if state.Submitted {
		return nil, ErrAlreadySubmitted
	}

	if fields := validation.CheckContactFields(state.Contact, state.Consent); len(fields) > 0 {
		return nil, &LocalValidationError{Fields: fields}
	}

	state = s.machine.Dispatch(SubmitStarted{})

	estimate := s.engine.Compute(state.Items, state.AccessIssues, state.Distance.EffectiveMiles())
	result := &SubmitResult{Estimate: estimate}

	submission := &models.QuoteSubmission{
		Items:          state.Items,
		AccessIssues:   state.AccessIssues,
		Address:        state.Address,
		Contact:        state.Contact,
		Distance:       state.Distance,
		TurnstileToken: state.VerificationToken,
	}

	log.Printf("📥 Wizard: Submitting quote (estimate £%.2f)", estimate.Total)

	price, err := s.api.SubmitQuote(ctx, submission)
	if err != nil {
		message := MessageNetworkFailure
		var serverErr *client.ServerError
		if errors.As(err, &serverErr) {
			message = MessageServerFailure
			if serverErr.Message != "" {
				message = serverErr.Message
			}
		}
		log.Printf("❌ Wizard: Submission failed: %v", err)
		s.machine.Dispatch(SubmitFailed{Message: message})
		return result, fmt.Errorf("failed to submit quote: %w", err)
	}

	if price != nil {
		result.Price = *price
	} else {
		result.Price = estimate
	}
	s.machine.Dispatch(SubmitSucceeded{Price: result.Price})

	log.Printf("✅ Wizard: Quote accepted, total £%.2f", result.Price.Total)
	return result, nil
}
