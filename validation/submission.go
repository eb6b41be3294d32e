package validation

import (
	"github.com/Soborbo/bristolhouseclearances/models"
)

type rawAddress struct {
	Line1    *string `json:"line1"`
	City     *string `json:"city"`
	Postcode *string `json:"postcode"`
}

type rawContact struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

type rawDistance struct {
	Miles      *float64 `json:"miles"`
	Calculated *bool    `json:"calculated"`
}

type rawSubmission struct {
	Items          map[string]*float64 `json:"items"`
	AccessIssues   []string            `json:"accessIssues"`
	Address        *rawAddress         `json:"address"`
	Contact        *rawContact         `json:"contact"`
	Distance       *rawDistance        `json:"distance"`
	TurnstileToken *string             `json:"turnstileToken"`
}

// ParseQuoteSubmission validates a wizard submission body and returns the normalized value.
// Item entries with quantity 0 are dropped; access issues are de-duplicated.
func ParseQuoteSubmission(data []byte) (*models.QuoteSubmission, error) {
	var raw rawSubmission
	if err := decodeStrict(data, &raw); err != nil {
		return nil, &Error{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}

	verr := &Error{}
	out := &models.QuoteSubmission{
		Items:        map[string]int{},
		AccessIssues: []string{},
	}

	validateItems(verr, raw.Items, out)
	validateAccessIssues(verr, raw.AccessIssues, out)
	validateAddress(verr, raw.Address, out)
	validateContact(verr, raw.Contact, out)
	validateDistance(verr, raw.Distance, out)

	if raw.TurnstileToken == nil || *raw.TurnstileToken == "" {
		verr.add("turnstileToken", "required")
	} else {
		out.TurnstileToken = *raw.TurnstileToken
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func validateItems(verr *Error, items map[string]*float64, out *models.QuoteSubmission) {
	if items == nil {
		verr.add("items", "required")
		return
	}
	for code, qty := range items {
		field := "items." + code
		if !models.IsCatalogItem(code) {
			verr.add(field, "unknown item")
			continue
		}
		if qty == nil {
			verr.add(field, "must be a number")
			continue
		}
		if !isWholeNumber(*qty) {
			verr.add(field, "must be a whole number")
			continue
		}
		if *qty < 0 || *qty > maxQuantity {
			verr.add(field, "must be between 0 and 99")
			continue
		}
		if *qty > 0 {
			out.Items[code] = int(*qty)
		}
	}
}

func validateAccessIssues(verr *Error, issues []string, out *models.QuoteSubmission) {
	if issues == nil {
		verr.add("accessIssues", "required")
		return
	}
	if len(issues) > len(models.AccessIssues) {
		verr.add("accessIssues", "too many entries")
		return
	}
	seen := make(map[string]bool, len(issues))
	for _, code := range issues {
		if !models.IsAccessIssue(code) {
			verr.add("accessIssues", "unknown access issue "+code)
			continue
		}
		if seen[code] {
			continue
		}
		seen[code] = true
		out.AccessIssues = append(out.AccessIssues, code)
	}
}

func validateAddress(verr *Error, addr *rawAddress, out *models.QuoteSubmission) {
	if addr == nil {
		verr.add("address", "required")
		return
	}
	if addr.Line1 == nil {
		verr.add("address.line1", "required")
	} else {
		checkLength(verr, "address.line1", *addr.Line1, 1, maxLine1Length)
		out.Address.Line1 = *addr.Line1
	}
	if addr.City != nil {
		out.Address.City = *addr.City
	}
	if addr.Postcode == nil || !IsValidPostcode(*addr.Postcode) {
		verr.add("address.postcode", "must be a UK postcode")
	} else {
		out.Address.Postcode = NormalizePostcode(*addr.Postcode)
	}
}

func validateContact(verr *Error, c *rawContact, out *models.QuoteSubmission) {
	if c == nil {
		verr.add("contact", "required")
		return
	}
	if c.FirstName == nil {
		verr.add("contact.firstName", "required")
	} else {
		checkLength(verr, "contact.firstName", *c.FirstName, 1, maxNameLength)
		out.Contact.FirstName = *c.FirstName
	}
	if c.LastName == nil {
		verr.add("contact.lastName", "required")
	} else {
		checkLength(verr, "contact.lastName", *c.LastName, 1, maxNameLength)
		out.Contact.LastName = *c.LastName
	}
	if c.Email == nil || !IsValidEmail(*c.Email) {
		verr.add("contact.email", "must be an email address")
	} else {
		out.Contact.Email = *c.Email
	}
	if c.Phone == nil || !IsValidPhone(*c.Phone) {
		verr.add("contact.phone", "must be a phone number")
	} else {
		out.Contact.Phone = *c.Phone
	}
	if c.Notes != nil {
		checkLength(verr, "contact.notes", *c.Notes, 0, maxNotesLength)
		out.Contact.Notes = *c.Notes
	}
}

func validateDistance(verr *Error, d *rawDistance, out *models.QuoteSubmission) {
	if d == nil {
		verr.add("distance", "required")
		return
	}
	if d.Miles == nil {
		verr.add("distance.miles", "required")
	} else if *d.Miles < 0 || *d.Miles > maxMiles {
		verr.add("distance.miles", "must be between 0 and 100")
	} else {
		out.Distance.Miles = *d.Miles
	}
	if d.Calculated == nil {
		verr.add("distance.calculated", "required")
	} else {
		out.Distance.Calculated = *d.Calculated
	}
}
