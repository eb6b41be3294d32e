package controller

import (
	"log"
	"net/http"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/service"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// ContactController handles HTTP requests for the contact form
type ContactController struct {
	service service.ContactServiceInterface
}

// NewContactController creates a new ContactController
func NewContactController(svc service.ContactServiceInterface) *ContactController {
	return &ContactController{
		service: svc,
	}
}

// Submit handles POST /api/contact
// Example request:
// POST /api/contact
// {
//   "name": "Sam Jones",
//   "phone": "07123 456789",
//   "email": "sam@example.com",
//   "postcode": "BS1 1AA",
//   "message": "Can you collect on Saturday?",
//   "website": ""
// }
// Example response:
// {"success": true}
// A filled "website" field is answered with success and otherwise ignored.
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Contact: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Contact: Method not allowed: %s", r.Method)
		writeFailure(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
		return
	}

	body, err := readBody(r)
	if err != nil {
		log.Printf("❌ Contact: Failed to read request body: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	if validation.HoneypotFilled(body) {
		log.Printf("⚠️  Contact: Honeypot filled, discarding message")
		writeJSON(w, http.StatusOK, models.ContactResponse{Success: true})
		return
	}

	req, err := validation.ParseContactRequest(body)
	if err != nil {
		log.Printf("❌ Contact: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	if err := c.service.Submit(r.Context(), req); err != nil {
		log.Printf("❌ Contact: Error processing message: %v", err)
		writeFailure(w, http.StatusInternalServerError, messageServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.ContactResponse{Success: true})
}
