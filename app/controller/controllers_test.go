package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/pricing"
	"github.com/Soborbo/bristolhouseclearances/service"
)

const validQuoteBody = `{
	"items": {"sofa_qty": 1, "mattress_qty": 2},
	"accessIssues": ["no-lift"],
	"address": {"line1": "1 High Street", "city": "Bristol", "postcode": "bs1 1aa"},
	"contact": {"firstName": "Sam", "lastName": "Jones", "email": "sam@example.com", "phone": "07123 456789", "notes": ""},
	"distance": {"miles": 0, "calculated": false},
	"turnstileToken": "token"
}`

type stubQuoteService struct {
	err      error
	received *models.QuoteSubmission
	remoteIP string
}

func (s *stubQuoteService) Submit(ctx context.Context, sub *models.QuoteSubmission, remoteIP string) (*models.PriceResult, error) {
	s.received = sub
	s.remoteIP = remoteIP
	if s.err != nil {
		return nil, s.err
	}
	price := pricing.Compute(sub.Items, sub.AccessIssues, sub.Distance.Miles)
	return &price, nil
}

type stubDistanceService struct {
	result *models.DistanceResult
	err    error
}

func (s *stubDistanceService) Calculate(ctx context.Context, req *models.DistanceRequest) (*models.DistanceResult, error) {
	return s.result, s.err
}

type stubContactService struct {
	calls int
	err   error
}

func (s *stubContactService) Submit(ctx context.Context, req *models.ContactRequest) error {
	s.calls++
	return s.err
}

type stubCatalogService struct {
	data []byte
	err  error
	name string
	size string
}

func (s *stubCatalogService) Catalog() models.CatalogResponse {
	return models.CatalogResponse{Items: models.ClearanceItems, AccessIssues: models.AccessIssues, MileRate: pricing.MileRate}
}

func (s *stubCatalogService) Image(name string, size string) ([]byte, error) {
	s.name, s.size = name, size
	return s.data, s.err
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) failureResponse {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body failureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body
}

func TestQuoteController_Submit(t *testing.T) {
	svc := &stubQuoteService{}
	ctrl := NewQuoteController(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(validQuoteBody))
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	rec := httptest.NewRecorder()
	ctrl.Submit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Price)
	assert.Equal(t, 192.0, resp.Price.Total)
	assert.Len(t, resp.Price.Breakdown, 3)

	assert.Equal(t, "BS1 1AA", svc.received.Address.Postcode)
	assert.Equal(t, "203.0.113.7", svc.remoteIP)
}

func TestQuoteController_Failures(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{name: "wrong method", method: http.MethodGet, wantStatus: http.StatusMethodNotAllowed, wantMsg: "Method not allowed"},
		{name: "malformed json", method: http.MethodPost, body: `{"items":`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request data"},
		{
			name:       "client price is not accepted",
			method:     http.MethodPost,
			body:       strings.Replace(validQuoteBody, `"turnstileToken"`, `"price": 1, "turnstileToken"`, 1),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid request data",
		},
		{name: "verification rejected", method: http.MethodPost, body: validQuoteBody, serviceErr: service.ErrVerificationFailed, wantStatus: http.StatusForbidden, wantMsg: "Verification failed"},
		{name: "internal fault", method: http.MethodPost, body: validQuoteBody, serviceErr: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubQuoteService{err: tt.serviceErr}
			rec := httptest.NewRecorder()
			NewQuoteController(svc).Submit(rec, httptest.NewRequest(tt.method, "/api/submit", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeFailure(t, rec).Message)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Nil(t, svc.received)
			}
		})
	}
}

func TestDistanceController_Calculate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *stubDistanceService
		wantStatus int
		wantMsg    string
	}{
		{name: "invalid", body: `{"address":"","postcode":"BS1 1AA"}`, svc: &stubDistanceService{}, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request data"},
		{name: "not found", body: `{"address":"1 High Street","postcode":"BS1 1AA"}`, svc: &stubDistanceService{err: service.ErrLocationNotFound}, wantStatus: http.StatusNotFound, wantMsg: "Location not found"},
		{name: "provider failure", body: `{"address":"1 High Street","postcode":"BS1 1AA"}`, svc: &stubDistanceService{err: service.ErrDistanceFailed}, wantStatus: http.StatusInternalServerError, wantMsg: "Distance calculation failed"},
		{name: "transport failure", body: `{"address":"1 High Street","postcode":"BS1 1AA"}`, svc: &stubDistanceService{err: errors.New("dial tcp")}, wantStatus: http.StatusInternalServerError, wantMsg: "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewDistanceController(tt.svc).Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/distance", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeFailure(t, rec).Message)
		})
	}

	t.Run("success", func(t *testing.T) {
		svc := &stubDistanceService{result: &models.DistanceResult{Miles: 12.4, DistanceText: "12.4 miles", DurationText: "26 min"}}
		rec := httptest.NewRecorder()
		NewDistanceController(svc).Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/distance", strings.NewReader(`{"address":"1 High Street","postcode":"BS1 1AA"}`)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"miles":12.4,"distanceText":"12.4 miles","durationText":"26 min"}}`, rec.Body.String())
	})
}

func TestContactController_Submit(t *testing.T) {
	t.Run("honeypot short-circuits", func(t *testing.T) {
		svc := &stubContactService{}
		rec := httptest.NewRecorder()
		body := `{"name":"Bot","phone":"x","email":"x","website":"http://spam.example"}`
		NewContactController(svc).Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("valid", func(t *testing.T) {
		svc := &stubContactService{}
		rec := httptest.NewRecorder()
		body := `{"name":"Sam Jones","phone":"07123 456789","email":"sam@example.com","website":""}`
		NewContactController(svc).Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, svc.calls)
	})

	t.Run("invalid", func(t *testing.T) {
		svc := &stubContactService{}
		rec := httptest.NewRecorder()
		NewContactController(svc).Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"Sam"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request data", decodeFailure(t, rec).Message)
		assert.Equal(t, 0, svc.calls)
	})
}

func TestCatalogController(t *testing.T) {
	svc := &stubCatalogService{data: []byte{0xff, 0xd8, 0xff}}
	ctrl := NewCatalogController(svc)

	rec := httptest.NewRecorder()
	ctrl.GetCatalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog models.CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Items, 8)

	rec = httptest.NewRecorder()
	ctrl.GetImage(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/images/sofa-clearance.webp?size=thumb", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "sofa-clearance.webp", svc.name)
	assert.Equal(t, "thumb", svc.size)

	svc.err = service.ErrImageNotFound
	rec = httptest.NewRecorder()
	ctrl.GetImage(rec, httptest.NewRequest(http.MethodGet, "/api/catalog/images/piano.webp", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "medium", svc.size)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.2, 10.0.0.1")
	assert.Equal(t, "198.51.100.2", clientIP(req))

	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
