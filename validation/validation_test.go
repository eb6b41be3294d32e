package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() map[string]any {
	return map[string]any{
		"items":        map[string]any{"sofa_qty": 1, "mattress_qty": 2, "garden_qty": 0},
		"accessIssues": []any{"no-lift"},
		"address":      map[string]any{"line1": "1 High Street", "city": "Bristol", "postcode": "bs1 1aa"},
		"contact": map[string]any{
			"firstName": "Sam",
			"lastName":  "Jones",
			"email":     "sam@example.com",
			"phone":     "07123 456789",
			"notes":     "Side gate is open",
		},
		"distance":       map[string]any{"miles": 4.2, "calculated": true},
		"turnstileToken": "token",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestParseQuoteSubmission_Valid(t *testing.T) {
	sub, err := ParseQuoteSubmission(mustJSON(t, validSubmission()))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"sofa_qty": 1, "mattress_qty": 2}, sub.Items)
	assert.Equal(t, []string{"no-lift"}, sub.AccessIssues)
	assert.Equal(t, "BS1 1AA", sub.Address.Postcode)
	assert.Equal(t, "Bristol", sub.Address.City)
	assert.Equal(t, "Sam Jones", sub.Contact.FullName())
	assert.Equal(t, models.DistanceInfo{Miles: 4.2, Calculated: true}, sub.Distance)
	assert.Equal(t, "token", sub.TurnstileToken)
}

func TestParseQuoteSubmission_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]any)
		field  string
	}{
		{
			name:   "unknown top-level field",
			mutate: func(b map[string]any) { b["price"] = 1 },
			field:  "body",
		},
		{
			name:   "unknown item",
			mutate: func(b map[string]any) { b["items"] = map[string]any{"piano_qty": 1} },
			field:  "items.piano_qty",
		},
		{
			name:   "quantity above range",
			mutate: func(b map[string]any) { b["items"] = map[string]any{"sofa_qty": 100} },
			field:  "items.sofa_qty",
		},
		{
			name:   "negative quantity",
			mutate: func(b map[string]any) { b["items"] = map[string]any{"sofa_qty": -1} },
			field:  "items.sofa_qty",
		},
		{
			name:   "fractional quantity",
			mutate: func(b map[string]any) { b["items"] = map[string]any{"sofa_qty": 1.5} },
			field:  "items.sofa_qty",
		},
		{
			name:   "missing items",
			mutate: func(b map[string]any) { delete(b, "items") },
			field:  "items",
		},
		{
			name:   "unknown access issue",
			mutate: func(b map[string]any) { b["accessIssues"] = []any{"stairs"} },
			field:  "accessIssues",
		},
		{
			name: "too many access issues",
			mutate: func(b map[string]any) {
				b["accessIssues"] = []any{"no-lift", "no-lift", "narrow-doors", "attic-basement", "restricted-parking"}
			},
			field: "accessIssues",
		},
		{
			name: "unknown address field",
			mutate: func(b map[string]any) {
				b["address"] = map[string]any{"line1": "1 High Street", "postcode": "BS1 1AA", "county": "Avon"}
			},
			field: "body",
		},
		{
			name: "syntactically invalid postcode",
			mutate: func(b map[string]any) {
				b["address"] = map[string]any{"line1": "1 High Street", "postcode": "12345"}
			},
			field: "address.postcode",
		},
		{
			name: "empty street line",
			mutate: func(b map[string]any) {
				b["address"] = map[string]any{"line1": "", "postcode": "BS1 1AA"}
			},
			field: "address.line1",
		},
		{
			name: "bad email",
			mutate: func(b map[string]any) {
				c := b["contact"].(map[string]any)
				c["email"] = "not-an-email"
			},
			field: "contact.email",
		},
		{
			name: "short phone",
			mutate: func(b map[string]any) {
				c := b["contact"].(map[string]any)
				c["phone"] = "0117"
			},
			field: "contact.phone",
		},
		{
			name: "phone with letters",
			mutate: func(b map[string]any) {
				c := b["contact"].(map[string]any)
				c["phone"] = "0117 CALL NOW"
			},
			field: "contact.phone",
		},
		{
			name:   "miles out of range",
			mutate: func(b map[string]any) { b["distance"] = map[string]any{"miles": 150, "calculated": true} },
			field:  "distance.miles",
		},
		{
			name:   "missing verification token",
			mutate: func(b map[string]any) { b["turnstileToken"] = "" },
			field:  "turnstileToken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validSubmission()
			tt.mutate(body)

			sub, err := ParseQuoteSubmission(mustJSON(t, body))
			require.Error(t, err)
			assert.Nil(t, sub)
			assert.True(t, IsValidationError(err))

			var verr *Error
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

// Lengths are counted in UTF-16 code units, so an emoji takes two
func TestParseQuoteSubmission_CountsUTF16Units(t *testing.T) {
	body := validSubmission()
	body["contact"].(map[string]any)["firstName"] = strings.Repeat("😀", 50)
	_, err := ParseQuoteSubmission(mustJSON(t, body))
	require.NoError(t, err)

	body["contact"].(map[string]any)["firstName"] = strings.Repeat("😀", 51)
	_, err = ParseQuoteSubmission(mustJSON(t, body))
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{{Field: "contact.firstName", Reason: "must be at most 100 characters"}}, verr.Fields)
}

func TestTruncateUTF16(t *testing.T) {
	assert.Equal(t, "abc", TruncateUTF16("abcdef", 3))
	assert.Equal(t, "abc", TruncateUTF16("abc", 10))
	assert.Equal(t, "😀", TruncateUTF16("😀😀", 3))
	assert.Equal(t, "a", TruncateUTF16("a😀", 2))
	assert.Equal(t, "", TruncateUTF16("😀", 1))
}

func TestFilterPhone(t *testing.T) {
	assert.Equal(t, "07123456789", FilterPhone("07123.456.789"))
	assert.Equal(t, "+44 (0)7123-456789", FilterPhone("tel:+44 (0)7123-456789"))
}

func TestParseQuoteSubmission_MalformedJSON(t *testing.T) {
	_, err := ParseQuoteSubmission([]byte(`{"items":`))
	assert.True(t, IsValidationError(err))
}

func TestParseQuoteSubmission_DeduplicatesAccessIssues(t *testing.T) {
	body := validSubmission()
	body["accessIssues"] = []any{"no-lift", "no-lift"}

	sub, err := ParseQuoteSubmission(mustJSON(t, body))
	require.NoError(t, err)
	assert.Equal(t, []string{"no-lift"}, sub.AccessIssues)
}

func TestParseDistanceRequest(t *testing.T) {
	req, err := ParseDistanceRequest([]byte(`{"address":"1 High Street","postcode":"bs34 6fe"}`))
	require.NoError(t, err)
	assert.Equal(t, "BS34 6FE", req.Postcode)

	_, err = ParseDistanceRequest([]byte(`{"address":"1 High Street","postcode":"BS34 6FE","miles":3}`))
	assert.Error(t, err)

	_, err = ParseDistanceRequest([]byte(`{"address":"","postcode":"BS34 6FE"}`))
	assert.Error(t, err)

	_, err = ParseDistanceRequest([]byte(`{"address":"1 High Street","postcode":"nowhere"}`))
	assert.Error(t, err)
}

func TestParseContactRequest(t *testing.T) {
	req, err := ParseContactRequest([]byte(`{"name":"Sam","phone":"07123 456789","email":"sam@example.com","website":""}`))
	require.NoError(t, err)
	assert.Equal(t, "Sam", req.Name)
	assert.Empty(t, req.Postcode)

	_, err = ParseContactRequest([]byte(`{"name":"Sam","phone":"07123 456789","email":"sam@example.com","extra":1}`))
	assert.Error(t, err)

	_, err = ParseContactRequest([]byte(`{"phone":"07123 456789","email":"sam@example.com"}`))
	assert.Error(t, err)
}

func TestHoneypotFilled(t *testing.T) {
	assert.True(t, HoneypotFilled([]byte(`{"website":"http://spam.example"}`)))
	assert.True(t, HoneypotFilled([]byte(`{"website":true}`)))
	assert.False(t, HoneypotFilled([]byte(`{"website":""}`)))
	assert.False(t, HoneypotFilled([]byte(`{"name":"Sam"}`)))
	assert.False(t, HoneypotFilled([]byte(`not json`)))
}

func TestPostcodeShape(t *testing.T) {
	for _, pc := range []string{"BS1 1AA", "bs34 6fe", "SW1A1AA", "M1 1AE", "B33 8TH", "CR2 6XH", "DN55 1PT"} {
		assert.True(t, IsValidPostcode(pc), pc)
	}
	for _, pc := range []string{"", "BS1", "12345", "BS1 1A", "BSS1 1AA", "BS1 1AA X"} {
		assert.False(t, IsValidPostcode(pc), pc)
	}
}

func TestCheckContactFields(t *testing.T) {
	errs := CheckContactFields(models.Contact{}, false)
	assert.Equal(t, map[string]string{
		"firstName": MessageRequired,
		"lastName":  MessageRequired,
		"email":     MessageInvalidEmail,
		"phone":     MessageInvalidPhone,
		"gdpr":      MessageConsent,
	}, errs)

	ok := CheckContactFields(models.Contact{
		FirstName: "Sam",
		LastName:  "Jones",
		Email:     "sam@example.com",
		Phone:     "(0117) 123-4567",
	}, true)
	assert.Empty(t, ok)
}

func TestCheckSnapshotShape(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "valid", data: `{"currentStep":3,"items":{"sofa_qty":1},"accessIssues":[]}`},
		{name: "step too high", data: `{"currentStep":6,"items":{},"accessIssues":[]}`, wantErr: true},
		{name: "step too low", data: `{"currentStep":0,"items":{},"accessIssues":[]}`, wantErr: true},
		{name: "step not a number", data: `{"currentStep":"2","items":{},"accessIssues":[]}`, wantErr: true},
		{name: "missing access issues", data: `{"currentStep":2,"items":{}}`, wantErr: true},
		{name: "access issues not array", data: `{"currentStep":2,"items":{},"accessIssues":"no-lift"}`, wantErr: true},
		{name: "items null", data: `{"currentStep":2,"items":null,"accessIssues":[]}`, wantErr: true},
		{name: "not an object", data: `[1,2,3]`, wantErr: true},
		{name: "null", data: `null`, wantErr: true},
		{name: "garbage", data: `{{{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSnapshotShape([]byte(tt.data), 5)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
