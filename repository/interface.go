package repository

import (
	"context"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// QuoteRepositoryInterface defines the contract for storing accepted submissions
type QuoteRepositoryInterface interface {
	Insert(ctx context.Context, record *models.QuoteRecord) error
}
