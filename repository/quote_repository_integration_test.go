//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Soborbo/bristolhouseclearances/db"
	"github.com/Soborbo/bristolhouseclearances/models"
)

func loadRecord(t *testing.T, reference string) (name, payload string, total sql.NullFloat64) {
	t.Helper()
	err := db.DB.QueryRowContext(context.Background(),
		`SELECT name, payload, total FROM quote_records WHERE reference = $1`, reference,
	).Scan(&name, &payload, &total)
	require.NoError(t, err)
	return name, payload, total
}

func TestQuoteRepository_Integration(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, db.InitDB(connStr))
	t.Cleanup(func() { _ = db.CloseDB() })

	repo := NewQuoteRepository(db.DB)
	ctx := context.Background()

	quote := &models.QuoteRecord{
		Reference: uuid.NewString(),
		Kind:      models.RecordKindQuote,
		Name:      "Sam Jones",
		Email:     "sam@example.com",
		Phone:     "07123 456789",
		Postcode:  "BS1 1AA",
		Payload:   `{"items":{"sofa_qty":1}}`,
		Total:     192,
	}
	require.NoError(t, repo.Insert(ctx, quote))
	assert.NotZero(t, quote.ID)
	assert.False(t, quote.CreatedAt.IsZero())

	name, payload, total := loadRecord(t, quote.Reference)
	assert.Equal(t, quote.Name, name)
	assert.Equal(t, sql.NullFloat64{Float64: 192, Valid: true}, total)
	assert.JSONEq(t, quote.Payload, payload)

	contact := &models.QuoteRecord{
		Reference: uuid.NewString(),
		Kind:      models.RecordKindContact,
		Name:      "Sam",
		Payload:   `{"message":"Call me"}`,
		Total:     50,
	}
	require.NoError(t, repo.Insert(ctx, contact))
	_, _, total = loadRecord(t, contact.Reference)
	assert.False(t, total.Valid)
}
