package models

// Address represents the pickup address collected in step 3
type Address struct {
	Line1    string `json:"line1"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// Contact represents the requester details collected in step 4
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// FullName returns "First Last"
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// DistanceInfo represents the resolved distance from the depot
type DistanceInfo struct {
	Miles      float64 `json:"miles"`
	Calculated bool    `json:"calculated"`
}

// EffectiveMiles returns the miles to price, which are zero until the distance was resolved
func (d DistanceInfo) EffectiveMiles() float64 {
	if !d.Calculated {
		return 0
	}
	return d.Miles
}

// QuoteSubmission represents a validated wizard submission
// Example request:
// POST /api/submit
// {
//   "items": {"sofa_qty": 1, "mattress_qty": 2},
//   "accessIssues": ["no-lift"],
//   "address": {"line1": "1 High Street", "city": "Bristol", "postcode": "BS1 1AA"},
//   "contact": {"firstName": "Sam", "lastName": "Jones", "email": "sam@example.com", "phone": "07123 456789", "notes": ""},
//   "distance": {"miles": 4.2, "calculated": true},
//   "turnstileToken": "XXXX"
// }
type QuoteSubmission struct {
	Items          map[string]int `json:"items"` // Only positive quantities
	AccessIssues   []string       `json:"accessIssues"`
	Address        Address        `json:"address"`
	Contact        Contact        `json:"contact"`
	Distance       DistanceInfo   `json:"distance"`
	TurnstileToken string         `json:"turnstileToken"`
}

// QuoteResponse represents the response of POST /api/submit
// Example response:
// {
//   "success": true,
//   "price": {"total": 192, "breakdown": [...]}
// }
type QuoteResponse struct {
	Success bool         `json:"success"`
	Price   *PriceResult `json:"price,omitempty"`
	Message string       `json:"message,omitempty"`
}
