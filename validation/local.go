package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// Messages shown next to wizard fields when local checks fail
const (
	MessageRequired     = "Required"
	MessageInvalidEmail = "Valid email required"
	MessageInvalidPhone = "Valid phone required"
	MessageConsent      = "Please agree to continue"
)

const minPhoneDigits = 10

// CheckContactFields runs the wizard's local pre-submission checks.
// They are weaker than ParseQuoteSubmission; the server remains authoritative.
// Returns field name -> message, empty when everything passes.
func CheckContactFields(contact models.Contact, consent bool) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(contact.FirstName) == "" {
		errs["firstName"] = MessageRequired
	}
	if strings.TrimSpace(contact.LastName) == "" {
		errs["lastName"] = MessageRequired
	}
	if !IsValidEmail(contact.Email) {
		errs["email"] = MessageInvalidEmail
	}
	if countDigits(contact.Phone) < minPhoneDigits {
		errs["phone"] = MessageInvalidPhone
	}
	if !consent {
		errs["gdpr"] = MessageConsent
	}
	return errs
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// CheckSnapshotShape verifies that a persisted wizard blob has the expected structure:
// an object whose currentStep is a number in [1, maxStep], whose items is an object and
// whose accessIssues is an array. Anything else is rejected as a whole.
func CheckSnapshotShape(data []byte, maxStep int) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("snapshot is not an object: %w", err)
	}
	if probe == nil {
		return fmt.Errorf("snapshot is null")
	}

	var step float64
	raw, ok := probe["currentStep"]
	if !ok {
		return fmt.Errorf("snapshot has no currentStep")
	}
	if err := json.Unmarshal(raw, &step); err != nil {
		return fmt.Errorf("currentStep is not a number")
	}
	if step < 1 || step > float64(maxStep) {
		return fmt.Errorf("currentStep %v out of range", step)
	}

	if !isJSONKind(probe["items"], '{') {
		return fmt.Errorf("items is not an object")
	}
	if !isJSONKind(probe["accessIssues"], '[') {
		return fmt.Errorf("accessIssues is not an array")
	}
	return nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return len(trimmed) > 0 && trimmed[0] == open
}
