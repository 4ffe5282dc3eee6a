package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
	"github.com/pennyflow/Personal-Finance-Backend/internal/service"
)

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
	)
}

func NewTestImportService(t *testing.T, db *sql.DB) *service.ImportService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewImportService(
		transactionRepo,
	)
}

func NewTestAnalysisService(t *testing.T, db *sql.DB) *service.AnalysisService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewAnalysisService(
		transactionRepo,
		snapshotRepo,
	)
}

// NewTestEnrichmentService creates an EnrichmentService backed by the given
// categorizer. Tests supply a mock implementing service.Categorizer to avoid
// real API calls.
func NewTestEnrichmentService(t *testing.T, db *sql.DB, client service.Categorizer, batchSize int) *service.EnrichmentService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewEnrichmentService(
		transactionRepo,
		client,
		batchSize,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
