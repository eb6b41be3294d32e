package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// DefaultVerifyURL is the Cloudflare Turnstile siteverify endpoint
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrVerificationFailed is returned when the verification provider rejects the token
var ErrVerificationFailed = errors.New("verification failed")

// VerificationService checks Turnstile tokens
type VerificationService struct {
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// Ensure VerificationService implements VerificationServiceInterface
var _ VerificationServiceInterface = (*VerificationService)(nil)

// NewVerificationService creates a new VerificationService
func NewVerificationService(secret string, httpClient *http.Client) *VerificationService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &VerificationService{
		secret:     secret,
		verifyURL:  DefaultVerifyURL,
		httpClient: httpClient,
	}
}

// WithVerifyURL overrides the siteverify endpoint
func (s *VerificationService) WithVerifyURL(verifyURL string) *VerificationService {
	s.verifyURL = verifyURL
	return s
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify forwards the token to the provider and reports its verdict.
// An error means the provider could not be asked, not that the token was rejected.
func (s *VerificationService) Verify(ctx context.Context, token string, remoteIP string) (bool, error) {
	form := url.Values{}
	form.Set("secret", s.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("failed to create verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to call verification provider: %w", err)
	}
	defer resp.Body.Close()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode verification response: %w", err)
	}

	if !result.Success {
		log.Printf("⚠️  Verify: Token rejected, error codes: %v", result.ErrorCodes)
	}
	return result.Success, nil
}
