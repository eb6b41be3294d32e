package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/Soborbo/bristolhouseclearances/models"
	"github.com/Soborbo/bristolhouseclearances/utils"
)

const (
	// DepotPostcode is where every collection starts
	DepotPostcode = "BS34 6FE"

	metersPerMile = 1609.34
)

var (
	// ErrDistanceFailed is returned when the provider reports a request-level failure
	ErrDistanceFailed = errors.New("distance calculation failed")
	// ErrLocationNotFound is returned when the provider cannot route to the destination
	ErrLocationNotFound = errors.New("location not found")
)

// FallbackDistance is returned when no provider key is configured
var FallbackDistance = models.DistanceResult{
	Miles:        5,
	DistanceText: "~5 miles (estimated)",
	DurationText: "~15 min",
}

// DistanceService resolves road distance from the depot with the Distance Matrix API
type DistanceService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	once      sync.Once
	client    *maps.Client
	clientErr error
}

// Ensure DistanceService implements DistanceServiceInterface
var _ DistanceServiceInterface = (*DistanceService)(nil)

// NewDistanceService creates a new DistanceService. An empty key enables the fixed fallback estimate.
func NewDistanceService(apiKey string, httpClient *http.Client) *DistanceService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DistanceService{
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// WithEndpoint points the Maps client at another base URL. Call before the first Calculate.
func (s *DistanceService) WithEndpoint(endpoint string) *DistanceService {
	s.baseURL = strings.TrimSuffix(endpoint, "/")
	return s
}

func (s *DistanceService) mapsClient() (*maps.Client, error) {
	s.once.Do(func() {
		opts := []maps.ClientOption{
			maps.WithAPIKey(s.apiKey),
			maps.WithHTTPClient(s.httpClient),
		}
		if s.baseURL != "" {
			opts = append(opts, maps.WithBaseURL(s.baseURL))
		}
		s.client, s.clientErr = maps.NewClient(opts...)
	})
	return s.client, s.clientErr
}

// Calculate returns the road distance and drive time from the depot to the address
func (s *DistanceService) Calculate(ctx context.Context, req *models.DistanceRequest) (*models.DistanceResult, error) {
	if s.apiKey == "" {
		log.Printf("⚠️  Calculate: No distance provider key, returning fallback estimate")
		fallback := FallbackDistance
		return &fallback, nil
	}

	client, err := s.mapsClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	resp, err := client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{DepotPostcode + ", UK"},
		Destinations: []string{fmt.Sprintf("%s %s, UK", req.Address, req.Postcode)},
	})
	if err != nil {
		// Transport failures and any non-OK top-level status land here
		log.Printf("❌ Calculate: Distance Matrix failed for postcode %s: %v", req.Postcode, err)
		return nil, fmt.Errorf("%w: %v", ErrDistanceFailed, err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 || resp.Rows[0].Elements[0].Status != "OK" {
		log.Printf("❌ Calculate: No route to postcode %s", req.Postcode)
		return nil, ErrLocationNotFound
	}

	element := resp.Rows[0].Elements[0]
	miles := utils.Round1(float64(element.Distance.Meters) / metersPerMile)
	minutes := int(math.Floor(element.Duration.Minutes() + 0.5))

	return &models.DistanceResult{
		Miles:        miles,
		DistanceText: strconv.FormatFloat(miles, 'f', -1, 64) + " miles",
		DurationText: fmt.Sprintf("%d min", minutes),
	}, nil
}
