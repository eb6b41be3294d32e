// Package sheets appends rows to a Google Spreadsheet using a service account.
// The OAuth2 JWT-bearer exchange is implemented here on crypto/rsa primitives;
// every append performs a fresh token exchange.
package sheets

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	// DefaultTokenURL is Google's OAuth2 token endpoint
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
	// DefaultBaseURL is the Sheets API v4 spreadsheets endpoint
	DefaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"
	// SpreadsheetsScope grants read/write access to spreadsheets
	SpreadsheetsScope = sheetsapi.SpreadsheetsScope

	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	targetRange    = "Sheet1!A:Z"
)

// ErrTokenExchange is returned when the token endpoint answers with a non-success status
var ErrTokenExchange = errors.New("token exchange failed")

// Config holds the configuration for the spreadsheet client
type Config struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	PrivateKey          string // PEM-encoded PKCS8 key
	TokenURL            string // Defaults to DefaultTokenURL
	BaseURL             string // Defaults to DefaultBaseURL
	HTTPClient          *http.Client
	Now                 func() time.Time
}

// Validate checks if the configuration is usable
func (c Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet id is required")
	}
	if c.ServiceAccountEmail == "" {
		return fmt.Errorf("service account email is required")
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("service account private key is required")
	}
	return nil
}

// Appender appends one row of values to the log spreadsheet
type Appender interface {
	AppendRow(ctx context.Context, values []any) error
}

// Client talks to the token endpoint and the Sheets API
type Client struct {
	spreadsheetID string
	email         string
	key           *rsa.PrivateKey
	tokenURL      string
	baseURL       string
	httpClient    *http.Client
	now           func() time.Time
}

// Ensure Client implements Appender
var _ Appender = (*Client)(nil)

// NewClient creates a new Client. The private key is parsed once here.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sheets config: %w", err)
	}

	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	client := &Client{
		spreadsheetID: cfg.SpreadsheetID,
		email:         cfg.ServiceAccountEmail,
		key:           key,
		tokenURL:      cfg.TokenURL,
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:    cfg.HTTPClient,
		now:           cfg.Now,
	}
	if client.tokenURL == "" {
		client.tokenURL = DefaultTokenURL
	}
	if client.baseURL == "" {
		client.baseURL = DefaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	if client.now == nil {
		client.now = time.Now
	}
	return client, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken signs a fresh assertion and exchanges it for a bearer token.
// A non-success status is returned as ErrTokenExchange; there is no retry.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	claims := NewClaims(c.email, SpreadsheetsScope, c.tokenURL, c.now())
	assertion, err := SignAssertion(c.key, claims)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrTokenExchange, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrTokenExchange)
	}
	return token.AccessToken, nil
}

// AppendRow appends one row to the first sheet. Values may mix strings and numbers.
func (c *Client) AppendRow(ctx context.Context, values []any) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(&sheetsapi.ValueRange{Values: [][]interface{}{values}})
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS",
		c.baseURL, c.spreadsheetID, targetRange)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create append request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sheets api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets api error %d: %s", resp.StatusCode, string(text))
	}

	log.Printf("📊 Sheets: Appended row with %d columns to spreadsheet %s", len(values), c.spreadsheetID)
	return nil
}
