package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table. The analysis engine never queries this table directly; it accepts
// whatever list the service layer hands it.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, date, description, type, amount, additional_data, category, cleaned_description, created_at`

// GetTransactions retrieves all transactions ordered by insertion time.
// Order matters downstream: the balance-hint scan walks the list from the
// most recently inserted row backward.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	rows, err := r.db.Query(`
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

// GetTransaction retrieves a single transaction by ID.
// Returns sql.ErrNoRows when the transaction does not exist.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	row := r.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM "transaction"
		WHERE id = ?
	`, id)

	return scanTransaction(row)
}

// CreateTransaction inserts a single transaction.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) error {
	_, err := r.db.Exec(`
		INSERT INTO "transaction" (id, date, description, type, amount, additional_data, category, cleaned_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.ID, t.Date, nullable(t.Description), t.Type, t.Amount,
		nullable(t.AdditionalData), nullable(t.Category), nullable(t.CleanedDescription),
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// CreateTransactions bulk-inserts transactions inside a single database
// transaction so a failed import never leaves a partial batch behind.
func (r *TransactionRepository) CreateTransactions(txns []model.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO "transaction" (id, date, description, type, amount, additional_data, category, cleaned_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		_, err := stmt.Exec(
			t.ID, t.Date, nullable(t.Description), t.Type, t.Amount,
			nullable(t.AdditionalData), nullable(t.Category), nullable(t.CleanedDescription),
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return nil
}

// UpdateTransaction overwrites a transaction row with the given values.
// Returns sql.ErrNoRows when the transaction does not exist.
func (r *TransactionRepository) UpdateTransaction(t model.Transaction) error {
	result, err := r.db.Exec(`
		UPDATE "transaction"
		SET date = ?, description = ?, type = ?, amount = ?, additional_data = ?, category = ?, cleaned_description = ?
		WHERE id = ?
	`,
		t.Date, nullable(t.Description), t.Type, t.Amount,
		nullable(t.AdditionalData), nullable(t.Category), nullable(t.CleanedDescription),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetEnrichment writes the categorizer results for a transaction without
// touching any of its base fields.
func (r *TransactionRepository) SetEnrichment(id, category, cleanedDescription string) error {
	result, err := r.db.Exec(`
		UPDATE "transaction"
		SET category = ?, cleaned_description = ?
		WHERE id = ?
	`, nullable(category), nullable(cleanedDescription), id)
	if err != nil {
		return fmt.Errorf("failed to update enrichment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
// Returns sql.ErrNoRows when the transaction does not exist.
func (r *TransactionRepository) DeleteTransaction(id string) error {
	result, err := r.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanTransaction.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (model.Transaction, error) {
	var t model.Transaction
	var description, additionalData, category, cleanedDescription sql.NullString
	var createdAtStr string

	err := s.Scan(
		&t.ID,
		&t.Date,
		&description,
		&t.Type,
		&t.Amount,
		&additionalData,
		&category,
		&cleanedDescription,
		&createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("failed to scan transaction row: %w", err)
	}

	t.Description = description.String
	t.AdditionalData = additionalData.String
	t.Category = category.String
	t.CleanedDescription = cleanedDescription.String

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
