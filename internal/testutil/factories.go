package testutil

import (
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pennyflow/Personal-Finance-Backend/internal/model"
)

// insertSeq spreads created_at values so insertion order stays observable
// even when many rows are built within the same wall-clock instant.
var insertSeq int64

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	txn := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	txn := testutil.NewTransaction().
//	    WithDescription("Coffee Shop").
//	    WithAmount(4.50).
//	    Expense().
//	    OnDaysAgo(3).
//	    Build(t, db)
type TransactionBuilder struct {
	ID                 string
	Date               string
	Description        string
	Type               string
	Amount             float64
	AdditionalData     string
	Category           string
	CleanedDescription string
	CreatedAt          time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults:
// an expense of 10.00 dated today.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		Date:        DaysAgo(0),
		Description: "Test Transaction " + randomAlphanumeric(6),
		Type:        model.TypeExpense,
		Amount:      10.00,
		CreatedAt:   time.Now().UTC().Add(time.Duration(atomic.AddInt64(&insertSeq, 1)) * time.Microsecond),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets a custom canonical DD-MM-YYYY date.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// OnDaysAgo dates the transaction the given number of days before today.
func (b *TransactionBuilder) OnDaysAgo(days int) *TransactionBuilder {
	b.Date = DaysAgo(days)
	return b
}

// WithDescription sets a custom description.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	b.Description = desc
	return b
}

// WithAmount sets a custom amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithAdditionalData sets the unmapped-column sidecar text.
func (b *TransactionBuilder) WithAdditionalData(data string) *TransactionBuilder {
	b.AdditionalData = data
	return b
}

// WithCategory sets the enrichment category.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.Category = category
	return b
}

// WithCleanedDescription sets the enrichment cleaned description.
func (b *TransactionBuilder) WithCleanedDescription(desc string) *TransactionBuilder {
	b.CleanedDescription = desc
	return b
}

// Income marks the transaction as income.
func (b *TransactionBuilder) Income() *TransactionBuilder {
	b.Type = model.TypeIncome
	return b
}

// Expense marks the transaction as an expense.
func (b *TransactionBuilder) Expense() *TransactionBuilder {
	b.Type = model.TypeExpense
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, date, description, type, amount, additional_data, category, cleaned_description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Date, b.Description, b.Type, b.Amount,
		nullable(b.AdditionalData), nullable(b.Category), nullable(b.CleanedDescription),
		b.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:                 b.ID,
		Date:               b.Date,
		Description:        b.Description,
		Type:               b.Type,
		Amount:             b.Amount,
		AdditionalData:     b.AdditionalData,
		Category:           b.Category,
		CleanedDescription: b.CleanedDescription,
		CreatedAt:          b.CreatedAt,
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Convenience functions

// CreateExpense creates an expense with the given description and amount,
// dated the given number of days before today.
//
// Example usage:
//
//	txn := testutil.CreateExpense(t, db, "Groceries", 54.20, 2)
func CreateExpense(t *testing.T, db *sql.DB, desc string, amount float64, daysAgo int) model.Transaction {
	t.Helper()
	return NewTransaction().WithDescription(desc).WithAmount(amount).OnDaysAgo(daysAgo).Build(t, db)
}

// CreateIncome creates an income transaction with the given description and
// amount, dated the given number of days before today.
//
// Example usage:
//
//	txn := testutil.CreateIncome(t, db, "Salary", 3000, 5)
func CreateIncome(t *testing.T, db *sql.DB, desc string, amount float64, daysAgo int) model.Transaction {
	t.Helper()
	return NewTransaction().Income().WithDescription(desc).WithAmount(amount).OnDaysAgo(daysAgo).Build(t, db)
}

// DaysAgo returns today minus the given number of days in canonical
// DD-MM-YYYY form.
//
// Example usage:
//
//	date := testutil.DaysAgo(7)
//	// One week ago, e.g. "22-08-2026"
func DaysAgo(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format("02-01-2006")
}
