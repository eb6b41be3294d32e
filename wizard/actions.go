package wizard

import (
	"strings"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// Action is a wizard event. The set is closed: only the types in this file implement it.
type Action interface {
	isAction()
}

// AddressField names an editable address field
type AddressField string

// Address fields
const (
	AddressLine1    AddressField = "line1"
	AddressCity     AddressField = "city"
	AddressPostcode AddressField = "postcode"
)

// ContactField names an editable contact field
type ContactField string

// Contact fields
const (
	ContactFirstName ContactField = "firstName"
	ContactLastName  ContactField = "lastName"
	ContactEmail     ContactField = "email"
	ContactPhone     ContactField = "phone"
	ContactNotes     ContactField = "notes"
)

type (
	// SetItemQuantity sets the quantity of a catalog item, clamped to [0, MaxQuantity]
	SetItemQuantity struct {
		Code     string
		Quantity int
	}

	// ToggleAccessIssue selects or deselects an access issue
	ToggleAccessIssue struct {
		Code string
	}

	// SetAddressField replaces one address field
	SetAddressField struct {
		Field AddressField
		Value string
	}

	// SetContactField replaces one contact field
	SetContactField struct {
		Field ContactField
		Value string
	}

	// SetDistance stores a resolved distance and marks it calculated
	SetDistance struct {
		Miles float64
	}

	// SetVerificationToken stores the one-shot verification token
	SetVerificationToken struct {
		Token string
	}

	// SetConsent records the data-processing consent
	SetConsent struct {
		Consent bool
	}

	// NextStep advances one step
	NextStep struct{}

	// PrevStep goes back one step
	PrevStep struct{}

	// GoToStep jumps to a step, clamped into range
	GoToStep struct {
		Step int
	}

	// SubmitStarted marks the submission as in progress
	SubmitStarted struct{}

	// SubmitSucceeded stores the authoritative price and shows the result step
	SubmitSucceeded struct {
		Price models.PriceResult
	}

	// SubmitFailed stores the user-facing failure message
	SubmitFailed struct {
		Message string
	}

	// Reset returns to the initial state
	Reset struct{}
)

func (SetItemQuantity) isAction()      {}
func (ToggleAccessIssue) isAction()    {}
func (SetAddressField) isAction()      {}
func (SetContactField) isAction()      {}
func (SetDistance) isAction()          {}
func (SetVerificationToken) isAction() {}
func (SetConsent) isAction()           {}
func (NextStep) isAction()             {}
func (PrevStep) isAction()             {}
func (GoToStep) isAction()             {}
func (SubmitStarted) isAction()        {}
func (SubmitSucceeded) isAction()      {}
func (SubmitFailed) isAction()         {}
func (Reset) isAction()                {}

// Reduce returns the state that follows action. It never modifies state;
// unknown actions and unknown codes or fields leave the state unchanged.
func Reduce(state State, action Action) State {
	next := state.clone()

	switch a := action.(type) {
	case SetItemQuantity:
		if !models.IsCatalogItem(a.Code) {
			return next
		}
		qty := clamp(a.Quantity, 0, MaxQuantity)
		if qty == 0 {
			delete(next.Items, a.Code)
		} else {
			next.Items[a.Code] = qty
		}

	case ToggleAccessIssue:
		if !models.IsAccessIssue(a.Code) {
			return next
		}
		if state.HasAccessIssue(a.Code) {
			kept := next.AccessIssues[:0]
			for _, issue := range next.AccessIssues {
				if issue != a.Code {
					kept = append(kept, issue)
				}
			}
			next.AccessIssues = kept
		} else {
			next.AccessIssues = append(next.AccessIssues, a.Code)
		}

	case SetAddressField:
		switch a.Field {
		case AddressLine1:
			next.Address.Line1 = validation.TruncateUTF16(a.Value, validation.MaxLine1Length)
		case AddressCity:
			next.Address.City = validation.TruncateUTF16(a.Value, validation.MaxCityLength)
		case AddressPostcode:
			next.Address.Postcode = validation.TruncateUTF16(strings.ToUpper(a.Value), validation.MaxPostcodeLength)
		}

	case SetContactField:
		switch a.Field {
		case ContactFirstName:
			next.Contact.FirstName = validation.TruncateUTF16(a.Value, validation.MaxNameLength)
		case ContactLastName:
			next.Contact.LastName = validation.TruncateUTF16(a.Value, validation.MaxNameLength)
		case ContactEmail:
			next.Contact.Email = a.Value
		case ContactPhone:
			next.Contact.Phone = validation.TruncateUTF16(validation.FilterPhone(a.Value), validation.MaxPhoneLength)
		case ContactNotes:
			next.Contact.Notes = validation.TruncateUTF16(a.Value, validation.MaxNotesLength)
		}

	case SetDistance:
		next.Distance = models.DistanceInfo{Miles: a.Miles, Calculated: true}

	case SetVerificationToken:
		next.VerificationToken = a.Token

	case SetConsent:
		next.Consent = a.Consent

	case NextStep:
		next.CurrentStep = clamp(state.CurrentStep+1, FirstStep, LastStep)

	case PrevStep:
		next.CurrentStep = clamp(state.CurrentStep-1, FirstStep, LastStep)

	case GoToStep:
		next.CurrentStep = clamp(a.Step, FirstStep, LastStep)

	case SubmitStarted:
		next.Status = StatusSubmitting
		next.Error = ""

	case SubmitSucceeded:
		price := a.Price
		price.Breakdown = append([]models.PriceBreakdownLine(nil), a.Price.Breakdown...)
		next.Status = StatusSucceeded
		next.Submitted = true
		next.Error = ""
		next.PriceResult = &price
		next.CurrentStep = LastStep

	case SubmitFailed:
		next.Status = StatusFailed
		next.Error = a.Message

	case Reset:
		return InitialState()
	}

	return next
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
