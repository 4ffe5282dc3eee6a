package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pennyflow/Personal-Finance-Backend/internal/api/request"
	"github.com/pennyflow/Personal-Finance-Backend/internal/apperrors"
	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
	"github.com/pennyflow/Personal-Finance-Backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependency.
func NewTransactionService(transactionRepo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
	}
}

// GetTransactions retrieves all transactions in insertion order.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions()
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no such transaction exists.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	t, err := s.transactionRepo.GetTransaction(id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	return t, err
}

// CreateTransaction creates a new transaction from a validated request,
// assigning it a fresh UUID.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.Transaction, error) {
	t := model.Transaction{
		ID:             uuid.NewString(),
		Date:           req.Date,
		Description:    req.Description,
		Type:           req.Type,
		Amount:         req.Amount,
		AdditionalData: req.AdditionalData,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// UpdateTransaction applies a partial update to an existing transaction.
// Returns apperrors.ErrTransactionNotFound when no such transaction exists.
func (s *TransactionService) UpdateTransaction(id string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	t, err := s.GetTransaction(id)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Date != nil {
		t.Date = *req.Date
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Amount != nil {
		t.Amount = *req.Amount
	}
	if req.AdditionalData != nil {
		t.AdditionalData = *req.AdditionalData
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.CleanedDescription != nil {
		t.CleanedDescription = *req.CleanedDescription
	}

	if err := s.transactionRepo.UpdateTransaction(t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, apperrors.ErrTransactionNotFound
		}
		return model.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction removes a transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no such transaction exists.
func (s *TransactionService) DeleteTransaction(id string) error {
	err := s.transactionRepo.DeleteTransaction(id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrTransactionNotFound
	}
	return err
}
