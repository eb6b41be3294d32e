// Package client calls the quote API on behalf of the wizard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// QuoteAPI is an HTTP client for the submission and distance endpoints
type QuoteAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewQuoteAPI creates a new QuoteAPI for the service at baseURL
func NewQuoteAPI(baseURL string, httpClient *http.Client) *QuoteAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &QuoteAPI{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ServerError is a failure reported by the API itself, as opposed to a transport failure
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded %d", e.Status)
	}
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Message)
}

// SubmitQuote posts a submission. A non-success answer is returned as *ServerError;
// any other error means the server could not be reached or answered garbage.
func (a *QuoteAPI) SubmitQuote(ctx context.Context, submission *models.QuoteSubmission) (*models.PriceResult, error) {
	var resp models.QuoteResponse
	status, err := a.postJSON(ctx, "/api/submit", submission, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !resp.Success {
		return nil, &ServerError{Status: status, Message: resp.Message}
	}
	return resp.Price, nil
}

// FetchDistance asks the server for the distance from the depot to the address
func (a *QuoteAPI) FetchDistance(ctx context.Context, line1, postcode string) (*models.DistanceResult, error) {
	var resp models.DistanceResponse
	status, err := a.postJSON(ctx, "/api/distance", models.DistanceRequest{Address: line1, Postcode: postcode}, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !resp.Success || resp.Data == nil {
		return nil, &ServerError{Status: status, Message: resp.Message}
	}
	return resp.Data, nil
}

func (a *QuoteAPI) postJSON(ctx context.Context, path string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			// Proxies answer errors with HTML; the status alone is enough.
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}
