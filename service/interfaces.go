package service

import (
	"context"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// VerificationServiceInterface defines the contract for human verification of a one-shot token
type VerificationServiceInterface interface {
	Verify(ctx context.Context, token string, remoteIP string) (bool, error)
}

// EmailServiceInterface defines the contract for sending notification emails
type EmailServiceInterface interface {
	Send(ctx context.Context, msg *models.EmailMessage) error
}

// DistanceServiceInterface defines the contract for resolving the distance to a pickup address
type DistanceServiceInterface interface {
	Calculate(ctx context.Context, req *models.DistanceRequest) (*models.DistanceResult, error)
}

// PostcodeServiceInterface defines the contract for postcode verification
type PostcodeServiceInterface interface {
	Lookup(ctx context.Context, postcode string) models.PostcodeResult
}

// QuoteServiceInterface defines the contract for accepting quote submissions
type QuoteServiceInterface interface {
	Submit(ctx context.Context, submission *models.QuoteSubmission, remoteIP string) (*models.PriceResult, error)
}

// ContactServiceInterface defines the contract for accepting contact form messages
type ContactServiceInterface interface {
	Submit(ctx context.Context, req *models.ContactRequest) error
}

// CatalogServiceInterface defines the contract for the item catalog and its pictures
type CatalogServiceInterface interface {
	Catalog() models.CatalogResponse
	Image(name string, size string) ([]byte, error)
}
