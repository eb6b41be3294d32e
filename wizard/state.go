// Package wizard holds the five-step quote wizard: its state, the pure transition
// function, persistence of the resumable part of the state and the submission flow.
package wizard

import (
	"github.com/Soborbo/bristolhouseclearances/models"
)

// Step bounds and quantity limits
const (
	FirstStep   = 1
	LastStep    = 5
	MaxQuantity = 99
)

// Status is the progress of the current submission
type Status string

// Status values
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// State is everything the wizard knows about the quote being built.
// Status, Error and VerificationToken are volatile and never persisted.
type State struct {
	CurrentStep       int
	Items             map[string]int // Only positive quantities
	AccessIssues      []string
	Address           models.Address
	Contact           models.Contact
	Distance          models.DistanceInfo
	VerificationToken string
	Consent           bool
	Status            Status
	Submitted         bool
	Error             string
	PriceResult       *models.PriceResult
}

// InitialState returns the all-empty state of a fresh wizard
func InitialState() State {
	return State{
		CurrentStep:  FirstStep,
		Items:        map[string]int{},
		AccessIssues: []string{},
		Status:       StatusIdle,
	}
}

// Submitting reports whether a submission is in progress
func (s State) Submitting() bool {
	return s.Status == StatusSubmitting
}

// HasAccessIssue reports whether the access issue code is selected
func (s State) HasAccessIssue(code string) bool {
	for _, issue := range s.AccessIssues {
		if issue == code {
			return true
		}
	}
	return false
}

// clone returns a copy that shares no maps, slices or pointers with s
func (s State) clone() State {
	out := s

	out.Items = make(map[string]int, len(s.Items))
	for code, qty := range s.Items {
		out.Items[code] = qty
	}

	out.AccessIssues = make([]string, len(s.AccessIssues))
	copy(out.AccessIssues, s.AccessIssues)

	if s.PriceResult != nil {
		price := *s.PriceResult
		price.Breakdown = append([]models.PriceBreakdownLine(nil), s.PriceResult.Breakdown...)
		out.PriceResult = &price
	}
	return out
}
