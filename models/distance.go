package models

// DistanceRequest represents the request body of POST /api/distance
// Example: {"address": "1 High Street", "postcode": "BS1 1AA"}
type DistanceRequest struct {
	Address  string `json:"address"`
	Postcode string `json:"postcode"`
}

// DistanceResult represents the distance from the depot to the pickup address
type DistanceResult struct {
	Miles        float64 `json:"miles"`
	DistanceText string  `json:"distanceText"`
	DurationText string  `json:"durationText"`
}

// DistanceResponse represents the response of POST /api/distance
type DistanceResponse struct {
	Success bool            `json:"success"`
	Data    *DistanceResult `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// PostcodeStatus is the outcome of a postcode verification
type PostcodeStatus string

// PostcodeStatus values
const (
	PostcodeValid        PostcodeStatus = "valid"
	PostcodeTooShort     PostcodeStatus = "invalid-too-short"
	PostcodeNotFound     PostcodeStatus = "not-found"
	PostcodeLookupFailed PostcodeStatus = "lookup-failed"
)

// PostcodeResult represents the result of a postcode lookup
type PostcodeResult struct {
	Status    PostcodeStatus `json:"status"`
	Postcode  string         `json:"postcode"` // Normalized (no whitespace, upper case)
	Latitude  float64        `json:"latitude,omitempty"`
	Longitude float64        `json:"longitude,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Valid reports whether the postcode was verified
func (r PostcodeResult) Valid() bool {
	return r.Status == PostcodeValid
}
