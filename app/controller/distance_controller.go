package controller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/service"
	"github.com/Soborbo/bristolhouseclearances/validation"
)

// DistanceController handles HTTP requests for distance resolution
type DistanceController struct {
	service service.DistanceServiceInterface
}

// NewDistanceController creates a new DistanceController
func NewDistanceController(svc service.DistanceServiceInterface) *DistanceController {
	return &DistanceController{
		service: svc,
	}
}

// Calculate handles POST /api/distance
// Example request:
// POST /api/distance
// {"address": "1 High Street", "postcode": "BS1 1AA"}
// Example response:
// {
//   "success": true,
//   "data": {"miles": 12.4, "distanceText": "12.4 miles", "durationText": "26 min"}
// }
// Failures: 400 "Invalid request data", 404 "Location not found", 500 "Distance calculation failed"
func (c *DistanceController) Calculate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Calculate: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Calculate: Method not allowed: %s", r.Method)
		writeFailure(w, http.StatusMethodNotAllowed, messageMethodNotAllowed)
		return
	}

	body, err := readBody(r)
	if err != nil {
		log.Printf("❌ Calculate: Failed to read request body: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	req, err := validation.ParseDistanceRequest(body)
	if err != nil {
		log.Printf("❌ Calculate: %v", err)
		writeFailure(w, http.StatusBadRequest, validation.InvalidRequestMessage)
		return
	}

	result, err := c.service.Calculate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLocationNotFound):
			writeFailure(w, http.StatusNotFound, messageLocationNotFound)
		case errors.Is(err, service.ErrDistanceFailed):
			writeFailure(w, http.StatusInternalServerError, messageDistanceFailed)
		default:
			log.Printf("❌ Calculate: Error resolving distance: %v", err)
			writeFailure(w, http.StatusInternalServerError, messageServerError)
		}
		return
	}

	log.Printf("✅ Calculate: %s is %.1f miles from the depot", req.Postcode, result.Miles)
	writeJSON(w, http.StatusOK, models.DistanceResponse{Success: true, Data: result})
}
