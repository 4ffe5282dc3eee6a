package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates that no persisted analysis snapshot exists,
	// or that the persisted snapshot carries a stale schema version.
	ErrSnapshotNotFound = errors.New("analysis snapshot not found")

	// ErrSettingNotFound indicates that a settings key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrNoTransactions indicates that an analysis was requested against an
	// empty transaction set. Distinct from a valid window that happens to
	// contain no transactions, which yields a zeroed result.
	ErrNoTransactions = errors.New("no transactions to analyze")

	// ErrInvalidRangeMode indicates an unrecognized range token.
	ErrInvalidRangeMode = errors.New("invalid range mode")

	// ErrMissingCustomBounds indicates a custom range without explicit start
	// and end dates. The resolver assumes both are present for custom mode.
	ErrMissingCustomBounds = errors.New("custom range requires start and end dates")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidTransactionType indicates a type other than income or expense.
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingColumnMapping indicates a CSV import without the required
	// column mapping (date plus either a type/amount pair or an
	// income/expense column pair).
	ErrMissingColumnMapping = errors.New("missing required column mapping")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToUpdateTransaction    = errors.New("failed to update transaction")
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToComputeAnalysis      = errors.New("failed to compute analysis")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrFailedToEnrichTransactions   = errors.New("failed to enrich transactions")
)
