// Package validation schema-checks untrusted input before it reaches pricing or
// any collaborator. Every shape is closed: unknown JSON fields are rejected.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// InvalidRequestMessage is the only validation message returned to HTTP callers
const InvalidRequestMessage = "Invalid request data"

const (
	maxQuantity     = 99
	maxLine1Length  = 200
	maxNameLength   = 100
	maxNotesLength  = 1000
	maxMiles        = 100
	maxContactName  = 200
	maxContactNotes = 2000
)

var (
	postcodeRegex = regexp.MustCompile(`(?i)^[A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2}$`)
	phoneRegex    = regexp.MustCompile(`^[\d\s+()-]{10,20}$`)
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// FieldError names one offending field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is returned when input fails validation. The field list is for logs only.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *Error) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *Error) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidationError reports whether err is a *Error
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// IsValidPostcode reports whether s is shaped like a UK postcode (case-insensitive)
func IsValidPostcode(s string) bool {
	return postcodeRegex.MatchString(s)
}

// IsValidEmail reports whether s has the standard address shape
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsValidPhone reports whether s matches the lenient 10-20 character phone pattern
func IsValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// NormalizePostcode upper-cases and trims a postcode
func NormalizePostcode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// decodeStrict decodes a JSON object into v, rejecting unknown fields and trailing data
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON object")
	}
	return nil
}

// decodeLenient decodes a JSON object into v, ignoring fields v does not declare
func decodeLenient(data []byte, v any) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func checkLength(verr *Error, field, value string, min, max int) {
	n := utf16Len(value)
	if n < min {
		if min == 1 {
			verr.add(field, "required")
		} else {
			verr.add(field, fmt.Sprintf("must be at least %d characters", min))
		}
		return
	}
	if n > max {
		verr.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

func isWholeNumber(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)
}
