package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// DefaultPostcodeURL is the postcodes.io lookup endpoint
const DefaultPostcodeURL = "https://api.postcodes.io/postcodes/"

const minPostcodeLength = 5

// Postcode lookup messages
const (
	MessagePostcodeTooShort     = "Postcode too short"
	MessagePostcodeNotFound     = "Postcode not found"
	MessagePostcodeLookupFailed = "Unable to verify postcode"
)

// PostcodeService verifies UK postcodes against postcodes.io
type PostcodeService struct {
	endpoint   string
	httpClient *http.Client
}

// Ensure PostcodeService implements PostcodeServiceInterface
var _ PostcodeServiceInterface = (*PostcodeService)(nil)

// NewPostcodeService creates a new PostcodeService
func NewPostcodeService(httpClient *http.Client) *PostcodeService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PostcodeService{
		endpoint:   DefaultPostcodeURL,
		httpClient: httpClient,
	}
}

// WithEndpoint overrides the lookup endpoint; the normalized postcode is appended to it
func (s *PostcodeService) WithEndpoint(endpoint string) *PostcodeService {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	s.endpoint = endpoint
	return s
}

// NormalizeLookupPostcode removes all whitespace and upper-cases the postcode
func NormalizeLookupPostcode(postcode string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, postcode))
}

type postcodeLookupResponse struct {
	Status int `json:"status"`
	Result *struct {
		Postcode  string  `json:"postcode"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"result"`
}

// Lookup verifies a postcode. It never fails: every outcome is reported in the result status.
func (s *PostcodeService) Lookup(ctx context.Context, postcode string) models.PostcodeResult {
	cleaned := NormalizeLookupPostcode(postcode)
	if len(cleaned) < minPostcodeLength {
		return models.PostcodeResult{Status: models.PostcodeTooShort, Postcode: cleaned, Error: MessagePostcodeTooShort}
	}

	lookupFailed := models.PostcodeResult{Status: models.PostcodeLookupFailed, Postcode: cleaned, Error: MessagePostcodeLookupFailed}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+url.PathEscape(cleaned), nil)
	if err != nil {
		log.Printf("❌ Lookup: Failed to create request for %s: %v", cleaned, err)
		return lookupFailed
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("❌ Lookup: Failed to call postcode provider for %s: %v", cleaned, err)
		return lookupFailed
	}
	defer resp.Body.Close()

	var data postcodeLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("❌ Lookup: Failed to decode response for %s: %v", cleaned, err)
		return lookupFailed
	}

	if data.Status != http.StatusOK || data.Result == nil {
		return models.PostcodeResult{Status: models.PostcodeNotFound, Postcode: cleaned, Error: MessagePostcodeNotFound}
	}

	return models.PostcodeResult{
		Status:    models.PostcodeValid,
		Postcode:  cleaned,
		Latitude:  data.Result.Latitude,
		Longitude: data.Result.Longitude,
	}
}
