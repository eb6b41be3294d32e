package models

// ContactRequest represents the request body of POST /api/contact
// Example request:
// {
//   "name": "Sam Jones",
//   "phone": "07123 456789",
//   "email": "sam@example.com",
//   "postcode": "BS1 1AA",
//   "message": "Can you collect on Saturday?",
//   "website": ""
// }
// "website" is a hidden honeypot field; real users leave it empty.
type ContactRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Postcode string `json:"postcode,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ContactResponse represents the response of POST /api/contact
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
