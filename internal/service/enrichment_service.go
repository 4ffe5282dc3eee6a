package service

import (
	"context"
	"fmt"

	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/categorizer"
	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
)

// Categorizer is the external classification collaborator. The production
// implementation is the HTTP client in internal/categorizer; tests supply a
// stub.
type Categorizer interface {
	Classify(ctx context.Context, items []categorizer.Item) ([]categorizer.Result, error)
}

// EnrichmentService pushes uncategorized transactions through the external
// categorizer and writes the resulting category and cleaned description back
// to the store. Enrichment never mutates amount, type or date.
type EnrichmentService struct {
	transactionRepo *repository.TransactionRepository
	client          Categorizer
	batchSize       int
}

// NewEnrichmentService creates a new EnrichmentService. client may be nil
// when no categorizer is configured; EnrichAll then reports failure without
// touching any data.
func NewEnrichmentService(transactionRepo *repository.TransactionRepository, client Categorizer, batchSize int) *EnrichmentService {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &EnrichmentService{
		transactionRepo: transactionRepo,
		client:          client,
		batchSize:       batchSize,
	}
}

// EnrichAll classifies every transaction that does not yet carry a category,
// in batches. Returns the number of transactions enriched. Transactions the
// categorizer does not return a result for stay untouched.
func (s *EnrichmentService) EnrichAll(ctx context.Context) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("%w: no categorizer configured", apperrors.ErrFailedToEnrichTransactions)
	}

	txns, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToEnrichTransactions, err)
	}

	pending := make([]categorizer.Item, 0, len(txns))
	for _, t := range txns {
		if t.Category != "" {
			continue
		}
		pending = append(pending, categorizer.Item{
			ID:          t.ID,
			Description: t.Description,
			Type:        t.Type,
			Amount:      t.Amount,
		})
	}

	enriched := 0
	for start := 0; start < len(pending); start += s.batchSize {
		end := min(start+s.batchSize, len(pending))

		results, err := s.client.Classify(ctx, pending[start:end])
		if err != nil {
			return enriched, fmt.Errorf("%w: %w", apperrors.ErrFailedToEnrichTransactions, err)
		}

		for _, res := range results {
			if res.Category == "" && res.CleanedDescription == "" {
				continue
			}
			if err := s.transactionRepo.SetEnrichment(res.ID, res.Category, res.CleanedDescription); err != nil {
				return enriched, fmt.Errorf("%w: %w", apperrors.ErrFailedToEnrichTransactions, err)
			}
			enriched++
		}
	}

	return enriched, nil
}
