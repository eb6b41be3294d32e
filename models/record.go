package models

import "time"

// Record kinds stored in quote_records
const (
	RecordKindQuote   = "quote"
	RecordKindContact = "contact"
)

// QuoteRecord represents a submission stored in the database
type QuoteRecord struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"` // UUID assigned when the submission is accepted
	Kind      string    `json:"kind"`      // "quote" or "contact"
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Postcode  string    `json:"postcode"`
	Payload   string    `json:"payload"` // JSON of the validated submission
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}
