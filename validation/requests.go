package validation

import (
	"strings"

	"github.com/Soborbo/bristolhouseclearances/models"
)

type rawDistanceRequest struct {
	Address  *string `json:"address"`
	Postcode *string `json:"postcode"`
}

// ParseDistanceRequest validates a POST /api/distance body
func ParseDistanceRequest(data []byte) (*models.DistanceRequest, error) {
	var raw rawDistanceRequest
	if err := decodeStrict(data, &raw); err != nil {
		return nil, &Error{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}

	verr := &Error{}
	out := &models.DistanceRequest{}

	if raw.Address == nil {
		verr.add("address", "required")
	} else {
		checkLength(verr, "address", *raw.Address, 1, maxLine1Length)
		out.Address = *raw.Address
	}
	if raw.Postcode == nil || !IsValidPostcode(*raw.Postcode) {
		verr.add("postcode", "must be a UK postcode")
	} else {
		out.Postcode = NormalizePostcode(*raw.Postcode)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

type rawContactRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Postcode *string `json:"postcode"`
	Message  *string `json:"message"`
	Website  *string `json:"website"`
}

// HoneypotFilled reports whether the hidden "website" field of a contact body is populated.
// Bodies that are not JSON objects report false and are left to ParseContactRequest.
func HoneypotFilled(data []byte) bool {
	var probe struct {
		Website any `json:"website"`
	}
	if err := decodeLenient(data, &probe); err != nil {
		return false
	}
	switch v := probe.Website.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return true
	}
}

// ParseContactRequest validates a POST /api/contact body.
// The honeypot field is accepted as part of the shape but not returned.
func ParseContactRequest(data []byte) (*models.ContactRequest, error) {
	var raw rawContactRequest
	if err := decodeStrict(data, &raw); err != nil {
		return nil, &Error{Fields: []FieldError{{Field: "body", Reason: err.Error()}}}
	}

	verr := &Error{}
	out := &models.ContactRequest{}

	if raw.Name == nil {
		verr.add("name", "required")
	} else {
		checkLength(verr, "name", *raw.Name, 1, maxContactName)
		out.Name = *raw.Name
	}
	if raw.Phone == nil || !IsValidPhone(*raw.Phone) {
		verr.add("phone", "must be a phone number")
	} else {
		out.Phone = *raw.Phone
	}
	if raw.Email == nil || !IsValidEmail(*raw.Email) {
		verr.add("email", "must be an email address")
	} else {
		out.Email = *raw.Email
	}
	if raw.Postcode != nil {
		out.Postcode = strings.TrimSpace(*raw.Postcode)
	}
	if raw.Message != nil {
		checkLength(verr, "message", *raw.Message, 0, maxContactNotes)
		out.Message = *raw.Message
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}
