package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/service"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// QuoteController handles HTTP requests for quote submissions
type QuoteController struct {
	service service.QuoteServiceInterface
}

// NewQuoteController creates a new QuoteController
func NewQuoteController(svc service.QuoteServiceInterface) *QuoteController {
	return &QuoteController{
		service: svc,
	}
}

// Submit handles POST /api/submit
// Example request:
// POST /api/submit
// {
//   "items": {"sofa_qty": 1, "mattress_qty": 2},
//   "accessIssues": ["no-lift"],
//   "address": {"line1": "1 High Street", "city": "Bristol", "postcode": "BS1 1AA"},
//   "contact": {"firstName": "Sam", "lastName": "Jones", "email": "sam@example.com", "phone": "07123 456789", "notes": ""},
//   "distance": {"miles": 0, "calculated": false},
//   "turnstileToken": "XXXX"
// }
// Example response:
// {
//   "success": true,
//   "price": {
//     "total": 192,
//     "breakdown": [
//       {"label": "Sofa", "quantity": 1, "unitPrice": 80, "lineTotal": 80},
//       {"label": "Mattress", "quantity": 2, "unitPrice": 40, "lineTotal": 80},
//       {"label": "Access difficulty surcharge (20%)", "quantity": 1, "unitPrice": 32, "lineTotal": 32}
//     ]
//   }
// }
// Failures: 400 "Invalid request data", 403 "Verification failed", 500 "Server error"
func (c *QuoteController) Submit(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Submit: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Submit: Method not allowed: %s", r.Method)
		writeFailure(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
		return
	}

	body, err := readBody(r)
	if err != nil {
		log.Printf("❌ Submit: Failed to read request body: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	submission, err := validation.ParseQuoteSubmission(body)
	if err != nil {
		log.Printf("❌ Submit: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	price, err := c.service.Submit(r.Context(), submission, clientIP(r))
	if err != nil {
		if errors.Is(err, service.ErrVerificationFailed) {
			log.Printf("❌ Submit: Verification failed for %s", submission.Contact.Email)
			writeFailure(w, http.StatusForbidden, messageVerificationFail)
			return
		}
		log.Printf("❌ Submit: Error processing submission: %v", err)
		writeFailure(w, http.StatusInternalServerError, messageServerError)
		return
	}

	log.Printf("✅ Submit: Accepted quote for %s, total=%.2f", submission.Contact.Email, price.Total)
	writeJSON(w, http.StatusOK, models.QuoteResponse{Success: true, Price: price})
}
