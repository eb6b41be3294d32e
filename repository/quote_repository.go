package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/Soborbo/bristolhouseclearances/models"
)

// QuoteRepository handles database operations for quote and contact records
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository(conn *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: conn}
}

// Ensure QuoteRepository implements QuoteRepositoryInterface
var _ QuoteRepositoryInterface = (*QuoteRepository)(nil)

// Insert stores a record and fills in its ID and CreatedAt
func (r *QuoteRepository) Insert(ctx context.Context, record *models.QuoteRecord) error {
	log.Printf("📦 Insert: Storing %s record reference=%s", record.Kind, record.Reference)

	query := `
		INSERT INTO quote_records (reference, kind, name, email, phone, postcode, payload, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	var total sql.NullFloat64
	if record.Kind == models.RecordKindQuote {
		total = sql.NullFloat64{Float64: record.Total, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		record.Reference,
		record.Kind,
		record.Name,
		record.Email,
		record.Phone,
		record.Postcode,
		record.Payload,
		total,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.Printf("❌ Insert: Error storing record reference=%s: %v", record.Reference, err)
		return fmt.Errorf("failed to insert quote record: %w", err)
	}

	log.Printf("✅ Insert: Stored record id=%d reference=%s", record.ID, record.Reference)
	return nil
}
