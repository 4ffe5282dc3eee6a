package service

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/pennyflow/Personal-Finance-Backend/internal/analysis"
	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
)

// AnalysisService runs the analysis pipeline over the stored transaction set
// and maintains the persisted snapshot.
//
// The engine itself is a pure function; this service owns the side concerns
// around it: reading the current transaction set, collapsing concurrent
// recomputations of the same range into one run, and writing the snapshot
// through on success. Snapshot writes are best-effort: a failed write is
// logged and never surfaces to the caller.
type AnalysisService struct {
	transactionRepo *repository.TransactionRepository
	snapshotRepo    *repository.SnapshotRepository
	group           singleflight.Group
}

// NewAnalysisService creates a new AnalysisService with the provided repository dependencies.
func NewAnalysisService(
	transactionRepo *repository.TransactionRepository,
	snapshotRepo *repository.SnapshotRepository,
) *AnalysisService {
	return &AnalysisService{
		transactionRepo: transactionRepo,
		snapshotRepo:    snapshotRepo,
	}
}

// GetAnalysis computes the analysis for the requested range over the current
// transaction set. Concurrent requests for the same range share a single
// computation. The result is persisted as the current snapshot before being
// returned.
//
// Returns apperrors.ErrNoTransactions when there is nothing to analyze at
// all; a window that merely contains no transactions yields a zeroed result.
func (s *AnalysisService) GetAnalysis(req request.AnalysisRequest) (*model.Analysis, error) {
	key := fmt.Sprintf("%s|%s|%s", req.Mode, req.Start, req.End)

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.compute(req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Analysis), nil
}

func (s *AnalysisService) compute(req request.AnalysisRequest) (*model.Analysis, error) {
	txns, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeAnalysis, err)
	}

	result := analysis.Analyze(txns, analysis.Options{
		Mode:         req.Mode,
		Start:        req.Start,
		End:          req.End,
		KnownBalance: req.KnownBalance,
	})
	if result == nil {
		return nil, apperrors.ErrNoTransactions
	}

	// Fire-and-forget: the snapshot is advisory, a write failure must not
	// block the computed result.
	if err := s.snapshotRepo.SaveSnapshot(result); err != nil {
		log.Printf("failed to persist analysis snapshot: %v", err)
	}

	return result, nil
}

// GetCachedAnalysis returns the persisted snapshot, if a current-version one
// exists. Intended for cold-start rendering before the first recomputation;
// callers must not treat it as a source of truth.
func (s *AnalysisService) GetCachedAnalysis() (*model.Analysis, error) {
	return s.snapshotRepo.GetSnapshot()
}

// GetInRangeTransactions returns the raw transactions inside the resolved
// window, for callers that need the filtered list rather than aggregates.
func (s *AnalysisService) GetInRangeTransactions(req request.AnalysisRequest) ([]model.Transaction, error) {
	txns, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	return analysis.InRange(txns, analysis.Options{
		Mode:  req.Mode,
		Start: req.Start,
		End:   req.End,
	}), nil
}

// RefreshSnapshot recomputes and persists the snapshot for the given range
// mode. Used by the scheduler; an empty transaction set is not an error here,
// there is simply nothing to refresh yet.
func (s *AnalysisService) RefreshSnapshot(mode string) error {
	_, err := s.GetAnalysis(request.AnalysisRequest{Mode: mode})
	if errors.Is(err, apperrors.ErrNoTransactions) {
		return nil
	}
	return err
}
